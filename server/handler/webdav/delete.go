package webdav

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/server/httpkit"
)

func (h *WebdavHandler) handleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.c.DeletionEnabled {
		httpkit.Fail(c, httpkit.ErrDeletionDisabled)
		return
	}
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	if rp.IsRoot() {
		httpkit.Fail(c, fmt.Errorf("delete root is not allowed, err:%w", httpkit.ErrForbidden))
		return
	}
	info, err := h.c.Store.Stat(ctx, rp.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	if info.IsDir {
		err = h.c.Store.Rmdir(ctx, rp.Abs)
	} else {
		err = h.c.Store.Delete(ctx, rp.Abs)
	}
	if err != nil {
		httpkit.Fail(c, fmt.Errorf("remove failed, path:%s, err:%w", rp.Abs, err))
		return
	}
	c.Status(http.StatusNoContent)
}
