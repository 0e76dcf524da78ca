package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// TransferLimitMiddleware 限制同时进行的数据传输数量, 等待期间客户端断开则直接结束
func TransferLimitMiddleware(sem *semaphore.Weighted, m *metrics.Metrics, methods ...string) gin.HandlerFunc {
	limited := make(map[string]struct{}, len(methods))
	for _, method := range methods {
		limited[method] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := limited[c.Request.Method]; !ok {
			return
		}
		ctx := c.Request.Context()
		if err := sem.Acquire(ctx, 1); err != nil {
			logutil.GetLogger(ctx).Debug("wait transfer slot failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		m.TransferStart()
		defer func() {
			m.TransferEnd()
			sem.Release(1)
		}()
		c.Next()
	}
}
