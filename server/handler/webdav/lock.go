package webdav

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/model"
)

const (
	lockTimeout     = "Second-3600"
	lockTokenPrefix = "opaquelocktoken:"
)

// handleLock 不维护锁状态, 每次都返回一个新的token, 仅用于兼容要求LOCK的客户端
func (h *WebdavHandler) handleLock(c *gin.Context) {
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	raw, err := readXMLBody(c)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	info := &model.LockInfo{}
	if len(raw) > 0 {
		if err := xml.Unmarshal(raw, info); err != nil {
			httpkit.Fail(c, fmt.Errorf("decode lockinfo failed, cause:%v, err:%w", err, httpkit.ErrBadRequest))
			return
		}
	}
	depth := "infinity"
	if c.GetHeader("Depth") == "0" {
		depth = "0"
	}
	token := lockTokenPrefix + uuid.NewString()
	active := model.ActiveLock{
		Depth:     depth,
		Owner:     info.Owner,
		Timeout:   lockTimeout,
		LockToken: model.Href{Href: token},
		LockRoot:  model.Href{Href: pathutil.Href(h.c.Prefix, rp.Rel, false)},
	}
	if info.LockScope.Shared != nil {
		active.LockScope.Shared = &struct{}{}
	} else {
		active.LockScope.Exclusive = &struct{}{}
	}
	c.Header("Lock-Token", "<"+token+">")
	h.writeDavResponse(c, http.StatusOK, &model.LockDiscoveryProp{
		XMLNS:         "DAV:",
		LockDiscovery: model.LockDiscovery{ActiveLock: active},
	})
}

func (h *WebdavHandler) handleUnlock(c *gin.Context) {
	if _, ok := h.resolve(c); !ok {
		return
	}
	c.Status(http.StatusNoContent)
}
