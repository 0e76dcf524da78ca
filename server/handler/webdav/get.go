package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/render"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleGet(c *gin.Context) {
	ctx := c.Request.Context()
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	info, err := h.c.Store.Stat(ctx, rp.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	if info.IsDir {
		h.handleDirGet(c, rp)
		return
	}
	if !h.c.DownloadEnabled {
		httpkit.Fail(c, httpkit.ErrDownloadDisabled)
		return
	}
	if match := c.GetHeader("If-None-Match"); len(match) > 0 && match == httpkit.ETag(info) {
		c.Status(http.StatusNotModified)
		return
	}
	stream, err := h.c.Store.OpenRead(ctx, rp.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.SetDownloadHeader(c, info, httpkit.SniffMimeType(info.Name(), stream), false)
	c.Status(http.StatusOK)
	n, err := h.c.Send(ctx, c.Writer, stream)
	if err != nil { //头部已经发出, 只能记录日志
		logutil.GetLogger(ctx).Error("send file failed", zap.String("path", rp.Abs), zap.Int64("sent", n), zap.Error(err))
		return
	}
}

// handleDirGet 开启browse模式时跳转到对应页面, 否则直接渲染目录
func (h *WebdavHandler) handleDirGet(c *gin.Context, rp *pathutil.ResolvedPath) {
	if h.c.BrowseEnabled() {
		c.Redirect(http.StatusFound, pathutil.Href(h.c.BrowsePrefix, rp.Rel, true))
		return
	}
	ctx := c.Request.Context()
	items, err := h.c.ListChildren(ctx, rp)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	page := render.BuildListingPage(&render.ListingOption{
		Prefix:          h.c.Prefix,
		Root:            h.c.Root,
		DownloadEnabled: h.c.DownloadEnabled,
		DeletionEnabled: h.c.DeletionEnabled,
	}, rp, items)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.WriteListing(c.Writer, page); err != nil {
		logutil.GetLogger(ctx).Error("write listing failed", zap.String("path", rp.Abs), zap.Error(err))
	}
}
