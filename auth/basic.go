package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
)

const (
	BasicAuthName = "basic"
	NoAuthName    = "none"

	DefaultRealm = "Restricted Area"
)

type basicAuth struct {
	realm    string
	expected []byte
}

// NewBasicAuth 基于固定账号的basic认证, 按字节比较"user:password"
func NewBasicAuth(user, password string, realm string) IAuth {
	if len(realm) == 0 {
		realm = DefaultRealm
	}
	return &basicAuth{
		realm:    realm,
		expected: []byte(user + ":" + password),
	}
}

func (b *basicAuth) Name() string {
	return BasicAuthName
}

func (b *basicAuth) Realm() string {
	return b.realm
}

func (b *basicAuth) Auth(r *http.Request) (string, error) {
	uak, usk, ok := r.BasicAuth()
	if !ok {
		return "", ErrNoCredential
	}
	carry := []byte(uak + ":" + usk)
	if subtle.ConstantTimeCompare(carry, b.expected) != 1 {
		return "", fmt.Errorf("user:%s, err:%w", uak, ErrInvalidAccount)
	}
	return uak, nil
}

type noAuth struct{}

// NewNoAuth 未配置账号时使用, 所有请求均通过
func NewNoAuth() IAuth {
	return &noAuth{}
}

func (n *noAuth) Name() string {
	return NoAuthName
}

func (n *noAuth) Realm() string {
	return ""
}

func (n *noAuth) Auth(r *http.Request) (string, error) {
	return "", nil
}
