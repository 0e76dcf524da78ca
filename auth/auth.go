package auth

import (
	"errors"
	"net/http"
)

var (
	ErrNoCredential   = errors.New("no credential found")
	ErrInvalidAccount = errors.New("invalid username or password")
)

type IAuth interface {
	Name() string
	// Realm 认证失败时WWW-Authenticate中携带的realm, 为空时不发送质询
	Realm() string
	Auth(r *http.Request) (string, error)
}

// Authenticate 请求是否通过认证
func Authenticate(a IAuth, r *http.Request) bool {
	_, err := a.Auth(r)
	return err == nil
}

// Challenge 401时需要返回的WWW-Authenticate头
func Challenge(a IAuth) string {
	realm := a.Realm()
	if len(realm) == 0 {
		return ""
	}
	return `Basic realm="` + realm + `"`
}
