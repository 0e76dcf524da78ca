package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	a := NewBasicAuth("admin", "secret", "")
	assert.Equal(t, BasicAuthName, a.Name())
	assert.Equal(t, `Basic realm="Restricted Area"`, Challenge(a))

	req := httptest.NewRequest(http.MethodGet, "/sdcard/", nil)
	_, err := a.Auth(req)
	assert.True(t, errors.Is(err, ErrNoCredential))
	assert.False(t, Authenticate(a, req))

	req.SetBasicAuth("admin", "wrong")
	_, err = a.Auth(req)
	assert.True(t, errors.Is(err, ErrInvalidAccount))

	req.SetBasicAuth("admin", "secret")
	user, err := a.Auth(req)
	assert.NoError(t, err)
	assert.Equal(t, "admin", user)
	assert.True(t, Authenticate(a, req))

	// 按"user:password"整体比较, 与冒号的拆分位置无关
	b := NewBasicAuth("a:b", "c", "x")
	req.SetBasicAuth("a", "b:c")
	assert.True(t, Authenticate(b, req))
	assert.Equal(t, `Basic realm="x"`, Challenge(b))
}

func TestNoAuth(t *testing.T) {
	a := NewNoAuth()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, Authenticate(a, req))
	assert.Equal(t, "", Challenge(a))
}
