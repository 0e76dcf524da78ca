package browse

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/render"
	"go.uber.org/zap"
)

func (h *BrowseHandler) HandleGet(c *gin.Context) {
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
	if !info.IsDir {
		h.handleDownload(c, rp, info)
		return
	}
	h.handleIndex(c, rp)
}

func (h *BrowseHandler) handleIndex(c *gin.Context, rp *pathutil.ResolvedPath) {
	ctx := c.Request.Context()
	items, err := h.c.ListChildren(ctx, rp)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	page := render.BuildListingPage(&render.ListingOption{
		Prefix:          h.c.BrowsePrefix,
		Root:            h.c.Root,
		DownloadEnabled: h.c.DownloadEnabled,
		DeletionEnabled: h.c.DeletionEnabled,
		UploadEnabled:   h.c.UploadEnabled,
	}, rp, items)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.WriteListing(c.Writer, page); err != nil {
		logutil.GetLogger(ctx).Error("write listing failed", zap.String("path", rp.Abs), zap.Error(err))
	}
}

func (h *BrowseHandler) handleDownload(c *gin.Context, rp *pathutil.ResolvedPath, info *filestore.FileInfo) {
	ctx := c.Request.Context()
	if !h.c.DownloadEnabled {
		httpkit.Fail(c, httpkit.ErrDownloadDisabled)
		return
	}
	stream, err := h.c.Store.OpenRead(ctx, rp.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.SetDownloadHeader(c, info, "application/octet-stream", true)
	c.Status(http.StatusOK)
	if n, err := h.c.Send(ctx, c.Writer, stream); err != nil {
		logutil.GetLogger(ctx).Error("send file failed", zap.String("path", rp.Abs), zap.Int64("sent", n), zap.Error(err))
	}
}
