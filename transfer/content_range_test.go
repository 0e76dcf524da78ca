package transfer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentRange(t *testing.T) {
	r, err := ParseContentRange("bytes 0-99/200")
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Start)
	assert.Equal(t, int64(99), r.End)
	assert.Equal(t, int64(200), r.Total)
	assert.Equal(t, int64(100), r.Length())
	assert.False(t, r.IsLast())
	assert.Equal(t, "bytes 0-99/200", r.String())

	r, err = ParseContentRange("bytes 100-199/*")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), r.Total)
	assert.Equal(t, "bytes 100-199/*", r.String())

	r, err = ParseContentRange(" bytes 100-199/200 ")
	require.NoError(t, err)
	assert.True(t, r.IsLast())

	for _, item := range []string{"", "0-1/2", "bytes 0-1", "bytes 5-1/10", "bytes -1-2/10", "bytes 0-10/10", "bytes a-b/c", "bytes 0-1/0"} {
		_, err := ParseContentRange(item)
		assert.True(t, errors.Is(err, ErrInvalidContentRange), "value:%s", item)
	}
}

func TestContentRangeReader(t *testing.T) {
	r := &ContentRange{Start: 5, End: 9, Total: 10}

	data, err := io.ReadAll(r.Reader(strings.NewReader("world")))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	_, err = io.ReadAll(r.Reader(strings.NewReader("world!")))
	assert.True(t, errors.Is(err, ErrInvalidContentRange))

	data, err = io.ReadAll(r.Reader(strings.NewReader("wor")))
	assert.True(t, errors.Is(err, ErrInvalidContentRange))
	assert.Equal(t, "wor", string(data))
}

func TestReceiveRangeMismatch(t *testing.T) {
	st, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/sdcard/docs/r.txt", []byte("hello"), 0644))
	r := &ContentRange{Start: 5, End: 9, Total: 10}
	sess := NewSession(st, "/sdcard/docs/r.txt", WithStartOffset(r.Start))
	_, err := Receive(context.Background(), sess, r.Reader(strings.NewReader("world and more")))
	assert.True(t, errors.Is(err, ErrInvalidContentRange))
	data, err := afero.ReadFile(fs, "/sdcard/docs/r.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
