package webdav

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"go.uber.org/zap"
)

// buildDstPath 解析Destination头, 只取path部分, 且必须落在同一个前缀下
func (h *WebdavHandler) buildDstPath(c *gin.Context) (*pathutil.ResolvedPath, error) {
	dstlink := c.GetHeader("Destination")
	if len(dstlink) == 0 {
		return nil, fmt.Errorf("no destination found, err:%w", httpkit.ErrBadRequest)
	}
	dsturi, err := url.Parse(dstlink)
	if err != nil {
		return nil, fmt.Errorf("parse destination failed, cause:%v, err:%w", err, httpkit.ErrBadRequest)
	}
	rp, err := pathutil.Resolve(h.c.Root, h.c.Prefix, dsturi.EscapedPath())
	if err != nil {
		return nil, fmt.Errorf("resolve destination failed, link:%s, cause:%v, err:%w", dstlink, err, httpkit.ErrBadRequest)
	}
	return rp, nil
}

func isOverwrite(c *gin.Context) bool {
	return c.GetHeader("Overwrite") != "F"
}

// prepareDst 检查目标父目录, 并按Overwrite语义处理已存在的目标
func (h *WebdavHandler) prepareDst(ctx context.Context, dst *pathutil.ResolvedPath, overwrite bool) error {
	parent, err := h.c.Store.Stat(ctx, path.Dir(dst.Abs))
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return fmt.Errorf("parent of destination missing, err:%w", httpkit.ErrConflict)
		}
		return err
	}
	if !parent.IsDir {
		return fmt.Errorf("parent of destination is a file, err:%w", httpkit.ErrConflict)
	}
	info, err := h.c.Store.Stat(ctx, dst.Abs)
	if errors.Is(err, filestore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !overwrite {
		return fmt.Errorf("destination:%s exists, err:%w", dst.Abs, httpkit.ErrPreconditionFailed)
	}
	if dst.IsRoot() {
		return fmt.Errorf("can not overwrite root, err:%w", httpkit.ErrForbidden)
	}
	if info.IsDir {
		return h.c.Store.Rmdir(ctx, dst.Abs)
	}
	return h.c.Store.Delete(ctx, dst.Abs)
}

func (h *WebdavHandler) handleCopy(c *gin.Context) {
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
	info, err := h.c.Store.Stat(ctx, src.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	if info.IsDir {
		httpkit.Fail(c, fmt.Errorf("copy collection:%s, err:%w", src.Abs, httpkit.ErrUnsupported))
		return
	}
	if pathutil.IsWithin(dst.Abs, src.Abs) { //包含src==dst
		httpkit.Fail(c, fmt.Errorf("src:%s and dst:%s overlap, err:%w", src.Abs, dst.Abs, httpkit.ErrForbidden))
		return
	}
	if err := h.prepareDst(ctx, dst, isOverwrite(c)); err != nil {
		httpkit.Fail(c, err)
		return
	}
	if err := h.c.Store.CopyFile(ctx, src.Abs, dst.Abs); err != nil {
		httpkit.Fail(c, fmt.Errorf("copy failed, src:%s, dst:%s, err:%w", src.Abs, dst.Abs, err))
		return
	}
	logutil.GetLogger(ctx).Info("file copied", zap.String("src", src.Abs), zap.String("dst", dst.Abs))
	c.Status(http.StatusCreated)
}
