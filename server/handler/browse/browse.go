package browse

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/handler"
	"github.com/xxxsen/sdwebdav/server/httpkit"
)

// BrowseHandler 面向浏览器的简单文件管理: 目录页/下载/上传/删除文件
type BrowseHandler struct {
	c *handler.Config
}

func NewBrowseHandler(c *handler.Config) *BrowseHandler {
	return &BrowseHandler{c: c}
}

func (h *BrowseHandler) resolve(c *gin.Context) (*pathutil.ResolvedPath, bool) {
	rp, err := h.c.Resolve(h.c.BrowsePrefix, c.Request)
	if err != nil {
		httpkit.Fail(c, err)
		return nil, false
	}
	return rp, true
}
