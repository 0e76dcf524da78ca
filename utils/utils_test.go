package utils

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempName(t *testing.T) {
	name := TempName("/sdcard/a.txt")
	assert.True(t, strings.HasPrefix(name, "/sdcard/a.txt."))
	assert.True(t, strings.HasSuffix(name, ".temp"))
	assert.NotEqual(t, name, TempName("/sdcard/a.txt"))
	assert.True(t, IsTempName(path.Base(name)))
	assert.False(t, IsTempName("a.txt"))
	assert.False(t, IsTempName("a.temp"))
	assert.False(t, IsTempName("a.notuuid.temp"))
}

func TestETag(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tag := ETag("/sdcard/a.txt", 10, now)
	assert.True(t, strings.HasPrefix(tag, "\""))
	assert.Equal(t, 18, len(tag))
	assert.Equal(t, tag, ETag("/sdcard/a.txt", 10, now))
	assert.NotEqual(t, tag, ETag("/sdcard/a.txt", 11, now))
	assert.NotEqual(t, tag, ETag("/sdcard/b.txt", 10, now))
	assert.NotEqual(t, tag, ETag("/sdcard/a.txt", 10, now.Add(time.Second)))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestCopyWithContext(t *testing.T) {
	ctx := context.Background()
	data := bytes.Repeat([]byte("0123456789"), 500)
	out := &bytes.Buffer{}
	n, err := CopyWithContext(ctx, out, bytes.NewReader(data), make([]byte, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, out.Bytes())

	_, err = CopyWithContext(ctx, failWriter{}, bytes.NewReader(data), make([]byte, 7))
	assert.True(t, errors.Is(err, ErrWriteFailed))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	n, err = CopyWithContext(cctx, out, bytes.NewReader(data), make([]byte, 7))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(0), n)
}
