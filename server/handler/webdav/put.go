package webdav

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/transfer"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handlePut(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.c.UploadEnabled {
		httpkit.Fail(c, httpkit.ErrUploadDisabled)
		return
	}
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	if rp.IsRoot() {
		httpkit.Fail(c, fmt.Errorf("put on root, err:%w", filestore.ErrIsDirectory))
		return
	}
	var body io.Reader = c.Request.Body
	complete := true
	opts := []transfer.SessionOption{
		transfer.WithCreateParents(true),
		transfer.WithAtomic(h.c.AtomicUpload),
	}
	if v := c.GetHeader("Content-Range"); len(v) > 0 {
		rng, err := transfer.ParseContentRange(v)
		if err != nil {
			httpkit.Fail(c, err)
			return
		}
		if c.Request.ContentLength >= 0 && c.Request.ContentLength != rng.Length() {
			httpkit.Fail(c, fmt.Errorf("range length:%d, body length:%d, err:%w", rng.Length(), c.Request.ContentLength, transfer.ErrInvalidContentRange))
			return
		}
		opts = append(opts, transfer.WithStartOffset(rng.Start))
		body = rng.Reader(body)
		complete = rng.IsLast()
	}
	start := time.Now()
	sess := transfer.NewSession(h.c.Store, rp.Abs, opts...)
	n, err := h.c.Receive(ctx, sess, body)
	if err != nil {
		httpkit.Fail(c, fmt.Errorf("receive file failed, path:%s, err:%w", rp.Abs, err))
		return
	}
	logutil.GetLogger(ctx).Info("file uploaded", zap.String("path", sess.Destination()), zap.Int64("offset", sess.Offset()-n),
		zap.String("size", humanize.IBytes(uint64(n))), zap.Bool("complete", complete), zap.Duration("cost", time.Since(start)))
	c.Status(http.StatusCreated)
}
