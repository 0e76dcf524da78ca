package webdav

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleMove(c *gin.Context) {
	ctx := c.Request.Context()
	src, ok := h.resolve(c)
	if !ok {
		return
	}
	dst, err := h.buildDstPath(c)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	if src.IsRoot() {
		httpkit.Fail(c, fmt.Errorf("move root is not allowed, err:%w", httpkit.ErrForbidden))
		return
	}
	if _, err := h.c.Store.Stat(ctx, src.Abs); err != nil {
		httpkit.Fail(c, err)
		return
	}
	if pathutil.IsWithin(src.Abs, dst.Abs) || pathutil.IsWithin(dst.Abs, src.Abs) { //包含src==dst
		httpkit.Fail(c, fmt.Errorf("src:%s and dst:%s overlap, err:%w", src.Abs, dst.Abs, httpkit.ErrForbidden))
		return
	}
	if err := h.prepareDst(ctx, dst, isOverwrite(c)); err != nil {
		httpkit.Fail(c, err)
		return
	}
	if err := h.c.Store.Rename(ctx, src.Abs, dst.Abs); err != nil {
		httpkit.Fail(c, fmt.Errorf("rename failed, src:%s, dst:%s, err:%w", src.Abs, dst.Abs, err))
		return
	}
	logutil.GetLogger(ctx).Info("file moved", zap.String("src", src.Abs), zap.String("dst", dst.Abs))
	c.Status(http.StatusCreated)
}
