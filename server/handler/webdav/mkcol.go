package webdav

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/server/httpkit"
)

func (h *WebdavHandler) handleMkcol(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Request.ContentLength > 0 || len(c.Request.TransferEncoding) > 0 {
		httpkit.Fail(c, fmt.Errorf("mkcol with body, err:%w", httpkit.ErrUnsupportedMediaType))
		return
	}
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	err := h.c.Store.Mkdir(ctx, rp.Abs)
	if errors.Is(err, filestore.ErrNotFound) || errors.Is(err, filestore.ErrNotDirectory) {
		httpkit.Fail(c, fmt.Errorf("parent of %s not usable, cause:%v, err:%w", rp.Abs, err, httpkit.ErrConflict))
		return
	}
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}
