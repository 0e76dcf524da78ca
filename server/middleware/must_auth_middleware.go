package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/auth"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"go.uber.org/zap"
)

const (
	keyUser = "auth_user"
)

// MustAuthMiddleware 认证失败直接返回401+质询, OPTIONS请求不做校验(CORS预检不会携带凭证)
func MustAuthMiddleware(a auth.IAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			return
		}
		user, err := a.Auth(c.Request)
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Debug("user auth failed", zap.String("auth", a.Name()),
				zap.String("path", c.Request.URL.Path), zap.String("ip", c.ClientIP()), zap.Error(err))
			if challenge := auth.Challenge(a); len(challenge) > 0 {
				c.Header("WWW-Authenticate", challenge)
			}
			httpkit.FailJSON(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(keyUser, user)
	}
}

// GetUser 认证通过的用户名, 未开启认证时为空
func GetUser(c *gin.Context) string {
	return c.GetString(keyUser)
}
