package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/server/httpkit"
)

func (h *WebdavHandler) handleHead(c *gin.Context) {
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
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Last-Modified", httpkit.LastModified(info.ModTime))
		c.Status(http.StatusOK)
		return
	}
	if !h.c.DownloadEnabled {
		httpkit.Fail(c, httpkit.ErrDownloadDisabled)
		return
	}
	httpkit.SetDownloadHeader(c, info, "", false)
	c.Status(http.StatusOK)
}
