package davc

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/sdwebdav/davc/client"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/server"
)

func newTestEnv(t *testing.T, user, password string) (*DavClient, afero.Fs) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sdcard", 0755))
	svr, err := server.New("",
		server.WithRoot("/sdcard"),
		server.WithURLPrefix("/dav"),
		server.WithBrowsePrefix(""),
		server.WithFileStore(filestore.New(fs)),
		server.WithUser("admin", "pwd"),
	)
	require.NoError(t, err)
	ts := httptest.NewServer(svr)
	t.Cleanup(ts.Close)
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	cli, err := client.New(client.WithSchema("http"), client.WithHost(u.Host), client.WithPrefix("/dav"), client.WithAuth(user, password))
	require.NoError(t, err)
	return New(WithClient(cli), WithPartSize(1000), WithResume(true), WithThread(2)), fs
}

func makeData(sz int) []byte {
	data := make([]byte, sz)
	for i := range data {
		data[i] = byte(i % 253)
	}
	return data
}

func writeLocal(t *testing.T, dir string, name string, data []byte) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	dc, fs := newTestEnv(t, "admin", "pwd")
	dir := t.TempDir()
	for _, sz := range []int{0, 1, 2500} {
		data := makeData(sz)
		src := writeLocal(t, dir, "a.bin", data)
		require.NoError(t, dc.UploadFile(ctx, src, "/a.bin"))
		saved, err := afero.ReadFile(fs, "/sdcard/a.bin")
		require.NoError(t, err)
		assert.Equal(t, data, saved)
	}
}

func TestUploadResume(t *testing.T) {
	ctx := context.Background()
	dc, fs := newTestEnv(t, "admin", "pwd")
	data := makeData(2500)
	require.NoError(t, afero.WriteFile(fs, "/sdcard/r.bin", data[:1200], 0644))
	src := writeLocal(t, t.TempDir(), "r.bin", data)
	require.NoError(t, dc.UploadFile(ctx, src, "/r.bin"))
	saved, err := afero.ReadFile(fs, "/sdcard/r.bin")
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	// 已完整的文件直接跳过
	require.NoError(t, dc.UploadFile(ctx, src, "/r.bin"))
	info, err := dc.Stat(ctx, "/r.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), info.Size)
	assert.False(t, info.IsDir)
}

func TestUploadFilesAndList(t *testing.T) {
	ctx := context.Background()
	dc, fs := newTestEnv(t, "admin", "pwd")
	dir := t.TempDir()
	srcs := []string{
		writeLocal(t, dir, "f1.txt", makeData(10)),
		writeLocal(t, dir, "f2.txt", makeData(1500)),
		writeLocal(t, dir, "f 3.txt", makeData(3000)),
	}
	require.NoError(t, dc.UploadFiles(ctx, srcs, "/x/y"))
	ok, err := afero.DirExists(fs, "/sdcard/x/y")
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := dc.List(ctx, "/x/y")
	require.NoError(t, err)
	require.Equal(t, 3, len(items))
	assert.Equal(t, "/x/y/f 3.txt", items[0].Path)
	assert.Equal(t, int64(3000), items[0].Size)
	assert.Equal(t, "/x/y/f1.txt", items[1].Path)
	assert.Equal(t, "/x/y/f2.txt", items[2].Path)

	items, err = dc.List(ctx, "/x")
	require.NoError(t, err)
	require.Equal(t, 1, len(items))
	assert.True(t, items[0].IsDir)
	assert.Equal(t, "/x/y", items[0].Path)

	// 重复创建已存在的目录
	require.NoError(t, dc.MkdirAll(ctx, "/x/y"))
	assert.Error(t, dc.MkdirAll(ctx, "/x/y/f1.txt/z"))
}

func TestRemoveAndNotFound(t *testing.T) {
	ctx := context.Background()
	dc, fs := newTestEnv(t, "admin", "pwd")
	require.NoError(t, afero.WriteFile(fs, "/sdcard/a.txt", []byte("a"), 0644))
	require.NoError(t, dc.Remove(ctx, "/a.txt"))
	_, err := dc.Stat(ctx, "/a.txt")
	assert.True(t, errors.Is(err, client.ErrNotFound))
	err = dc.Remove(ctx, "/a.txt")
	assert.True(t, errors.Is(err, client.ErrNotFound))
}

func TestBadCredential(t *testing.T) {
	ctx := context.Background()
	dc, _ := newTestEnv(t, "admin", "bad")
	_, err := dc.Stat(ctx, "/")
	require.Error(t, err)
	assert.False(t, errors.Is(err, client.ErrNotFound))
}
