package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/metrics"
	"go.uber.org/zap"
)

func AccessLogMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		cost := time.Since(start)
		code := c.Writer.Status()
		m.RecordRequest(c.Request.Method, code, cost)
		logutil.GetLogger(c.Request.Context()).Info("access",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", code),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("cost", cost),
			zap.String("ip", c.ClientIP()),
			zap.String("user", GetUser(c)),
		)
	}
}
