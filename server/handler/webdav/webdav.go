package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/handler"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"go.uber.org/zap"
)

type WebdavHandler struct {
	c *handler.Config
}

func NewWebdavHandler(c *handler.Config) *WebdavHandler {
	return &WebdavHandler{c: c}
}

func (h *WebdavHandler) resolve(c *gin.Context) (*pathutil.ResolvedPath, bool) {
	rp, err := h.c.Resolve(h.c.Prefix, c.Request)
	if err != nil {
		httpkit.Fail(c, err)
		return nil, false
	}
	return rp, true
}

func (h *WebdavHandler) Handler(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		h.handleOption(c)
	case http.MethodGet:
		h.handleGet(c)
	case http.MethodHead:
		h.handleHead(c)
	case http.MethodPut:
		h.handlePut(c)
	case http.MethodDelete:
		h.handleDelete(c)
	case MethodPropfind:
		h.handlePropfind(c)
	case MethodProppatch:
		h.handleProppatch(c)
	case MethodMkcol:
		h.handleMkcol(c)
	case MethodCopy:
		h.handleCopy(c)
	case MethodMove:
		h.handleMove(c)
	case MethodLock:
		h.handleLock(c)
	case MethodUnlock:
		h.handleUnlock(c)
	default:
		logutil.GetLogger(c.Request.Context()).Error("unsupported method", zap.String("method", c.Request.Method))
		httpkit.FailJSON(c, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	}
}
