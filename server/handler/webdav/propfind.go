package webdav

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/render"
	"go.uber.org/zap"
)

const (
	maxXMLBodySize = 64 * 1024
	xmlContentType = `application/xml; charset="utf-8"`
)

// 部分代码参考: https://github.com/emersion/go-webdav

func readXMLBody(c *gin.Context) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxXMLBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body failed, cause:%v, err:%w", err, httpkit.ErrBadRequest)
	}
	if len(raw) > maxXMLBodySize {
		return nil, fmt.Errorf("xml body too large, err:%w", httpkit.ErrBadRequest)
	}
	return raw, nil
}

func (h *WebdavHandler) writeDavResponse(c *gin.Context, code int, v interface{}) {
	c.Header("Content-Type", xmlContentType)
	c.Status(code)
	if err := render.WriteXML(c.Writer, v); err != nil {
		logutil.GetLogger(c.Request.Context()).Error("write as xml failed", zap.Error(err))
	}
}

func (h *WebdavHandler) handlePropfind(c *gin.Context) {
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
	// Depth为0时只返回自身, 1/infinity/缺省均只获取直接子级
	var children []*filestore.FileInfo
	if info.IsDir && c.GetHeader("Depth") != "0" {
		children, err = h.c.ListChildren(ctx, rp)
		if err != nil {
			httpkit.Fail(c, fmt.Errorf("find entries failed, location:%s, err:%w", rp.Abs, err))
			return
		}
	}
	ms := render.BuildMultistatus(h.c.Prefix, rp, info, children)
	h.writeDavResponse(c, http.StatusMultiStatus, ms)
}
