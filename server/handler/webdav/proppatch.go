package webdav

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/model"
	"github.com/xxxsen/sdwebdav/server/render"
)

// handleProppatch 属性不做持久化, 仅回显成功
func (h *WebdavHandler) handleProppatch(c *gin.Context) {
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
	raw, err := readXMLBody(c)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	update := &model.PropertyUpdate{}
	if err := xml.Unmarshal(raw, update); err != nil {
		httpkit.Fail(c, fmt.Errorf("decode propertyupdate failed, cause:%v, err:%w", err, httpkit.ErrBadRequest))
		return
	}
	ms := render.BuildPropPatchEcho(h.c.Prefix, rp, info.IsDir, update)
	h.writeDavResponse(c, http.StatusMultiStatus, ms)
}
