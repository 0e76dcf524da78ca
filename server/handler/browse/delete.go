package browse

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"go.uber.org/zap"
)

// HandleDelete 只允许删除文件
func (h *BrowseHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.c.DeletionEnabled {
		httpkit.Fail(c, httpkit.ErrDeletionDisabled)
		return
	}
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	info, err := h.c.Store.Stat(ctx, rp.Abs)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	if info.IsDir {
		httpkit.Fail(c, fmt.Errorf("path:%s, err:%w", rp.Abs, httpkit.ErrDeleteDirectory))
		return
	}
	if err := h.c.Store.Delete(ctx, rp.Abs); err != nil {
		httpkit.Fail(c, fmt.Errorf("delete file failed, err:%w", err))
		return
	}
	logutil.GetLogger(ctx).Info("file deleted", zap.String("path", rp.Abs))
	c.Status(http.StatusNoContent)
}
