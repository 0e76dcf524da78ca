package httpkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/transfer"
)

func TestStatusOf(t *testing.T) {
	testList := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("x, err:%w", pathutil.ErrInvalidPath), http.StatusBadRequest},
		{pathutil.ErrPrefixMismatch, http.StatusNotFound},
		{fmt.Errorf("stat failed, err:%w", filestore.ErrNotFound), http.StatusNotFound},
		{filestore.ErrAlreadyExists, http.StatusMethodNotAllowed},
		{filestore.ErrIsDirectory, http.StatusMethodNotAllowed},
		{ErrUploadDisabled, http.StatusUnauthorized},
		{fmt.Errorf("wrap:%w", ErrDeleteDirectory), http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{transfer.ErrParentNotFound, http.StatusConflict},
		{ErrPreconditionFailed, http.StatusPreconditionFailed},
		{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{transfer.ErrOffsetMismatch, http.StatusRequestedRangeNotSatisfiable},
		{transfer.ErrIdleTimeout, http.StatusRequestTimeout},
		{ErrUnsupported, http.StatusNotImplemented},
		{filestore.ErrIO, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, item := range testList {
		assert.Equal(t, item.code, StatusOf(item.err), "err:%v", item.err)
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "file upload is disabled", MessageOf(ErrUploadDisabled))
	assert.Equal(t, "invalid upload folder", MessageOf(fmt.Errorf("path:/a, err:%w", ErrInvalidUploadFolder)))
	assert.Equal(t, "Not Found", MessageOf(fmt.Errorf("stat /sdcard/secret failed, err:%w", filestore.ErrNotFound)))
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/files/a", nil)
	Fail(c, ErrDeletionDisabled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"file deletion is disabled"}`, rec.Body.String())
	assert.True(t, c.IsAborted())
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "image/png", DetermineMimeType("a.png"))
	assert.Equal(t, "application/octet-stream", DetermineMimeType("a.unknownext"))

	rs := strings.NewReader("%PDF-1.4 hello")
	assert.Equal(t, "application/pdf", SniffMimeType("noext", rs))
	rest, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 hello", string(rest))
	assert.Equal(t, "application/json", SniffMimeType("a.json", strings.NewReader("")))
}

func TestSetDownloadHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	info := &filestore.FileInfo{Path: "/sdcard/my photo.png", Size: 1234, ModTime: mtime}
	SetDownloadHeader(c, info, "", true)
	h := rec.Header()
	assert.Equal(t, "1234", h.Get("Content-Length"))
	assert.Equal(t, "Tue, 02 Jan 2024 03:04:05 GMT", h.Get("Last-Modified"))
	assert.Equal(t, ETag(info), h.Get("ETag"))
	assert.Equal(t, `attachment; filename="my photo.png"`, h.Get("Content-Disposition"))
	assert.Equal(t, "image/png", h.Get("Content-Type"))
}

func TestReadDeadlineSetter(t *testing.T) {
	assert.Nil(t, ReadDeadlineSetter(context.Background()))
	ctx := WithResponseWriter(context.Background(), httptest.NewRecorder())
	fn := ReadDeadlineSetter(ctx)
	require.NotNil(t, fn)
	assert.NoError(t, fn(time.Now().Add(time.Second)))
}
