package pathutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testResolvePair struct {
	root   string
	prefix string
	url    string
	abs    string
	rel    string
	err    error
}

func TestResolve(t *testing.T) {
	testList := []*testResolvePair{
		{root: "/sdcard", prefix: "/files", url: "/files/notes.txt", abs: "/sdcard/notes.txt", rel: "/notes.txt"},
		{root: "/sdcard/", prefix: "/files", url: "/files/notes.txt", abs: "/sdcard/notes.txt", rel: "/notes.txt"},
		{root: "/sdcard", prefix: "/files", url: "/files", abs: "/sdcard", rel: "/"},
		{root: "/sdcard", prefix: "/files", url: "/files/", abs: "/sdcard", rel: "/"},
		{root: "/sdcard", prefix: "files/", url: "/files/a/b/", abs: "/sdcard/a/b", rel: "/a/b"},
		{root: "/sdcard", prefix: "/files", url: "/files/my%20doc.txt", abs: "/sdcard/my doc.txt", rel: "/my doc.txt"},
		{root: "/sdcard", prefix: "/files", url: "/files/my+doc.txt", abs: "/sdcard/my doc.txt", rel: "/my doc.txt"},
		{root: "/sdcard", prefix: "/files", url: "/files//a//b.txt", abs: "/sdcard/a/b.txt", rel: "/a/b.txt"},
		{root: "/sdcard", prefix: "/files", url: "/files/./a.txt", abs: "/sdcard/a.txt", rel: "/a.txt"},
		{root: "/sdcard", prefix: "/files", url: "/files/a.txt?x=1", abs: "/sdcard/a.txt", rel: "/a.txt"},
		{root: "/", prefix: "", url: "/a.txt", abs: "/a.txt", rel: "/a.txt"},
		{root: "/sdcard", prefix: "/", url: "/a.txt", abs: "/sdcard/a.txt", rel: "/a.txt"},
		{root: "/sdcard", prefix: "/files", url: "/other/a.txt", err: ErrPrefixMismatch},
		{root: "/sdcard", prefix: "/files", url: "/filesx/a.txt", err: ErrPrefixMismatch},
		{root: "/sdcard", prefix: "/files", url: "/files/../etc/passwd", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/%2e%2e/etc/passwd", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/%2e%2e%2fetc%2fpasswd", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/a/..", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/a%00.txt", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/..%5c..%5cetc", err: ErrInvalidPath},
		{root: "/sdcard", prefix: "/files", url: "/files/%zz", err: ErrInvalidPath},
	}
	for _, item := range testList {
		rp, err := Resolve(item.root, item.prefix, item.url)
		if item.err != nil {
			assert.True(t, errors.Is(err, item.err), "url:%s, err:%v", item.url, err)
			continue
		}
		if !assert.NoError(t, err, "url:%s", item.url) {
			continue
		}
		assert.Equal(t, item.abs, rp.Abs)
		assert.Equal(t, item.rel, rp.Rel)
	}
}

func TestResolveNeverEscapesRoot(t *testing.T) {
	const root = "/sdcard"
	segs := []string{"..", "%2e%2e", "%2E%2E", ".%2e", "%2e.", "a", ".", "", "%2f", "%2F", "//", "%00", "+", "%5c", "etc", "/sdcard", "%252e%252e"}
	count := 0
	for _, a := range segs {
		for _, b := range segs {
			for _, c := range segs {
				url := "/files/" + a + "/" + b + "/" + c
				rp, err := Resolve(root, "/files", url)
				if err != nil {
					continue
				}
				count++
				assert.True(t, rp.Abs == root || strings.HasPrefix(rp.Abs, root+"/"), "url:%s escaped to:%s", url, rp.Abs)
				assert.False(t, strings.Contains(rp.Abs, ".."), "url:%s resolved to:%s", url, rp.Abs)
			}
		}
	}
	assert.True(t, count > 0)
}

func TestResolveDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		rp, err := Resolve("/sdcard", "/files", "/files/a%20b/c.txt")
		assert.NoError(t, err)
		assert.Equal(t, "/sdcard/a b/c.txt", rp.Abs)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/sdcard/a", Join("/sdcard", "a"))
	assert.Equal(t, "/sdcard/a", Join("/sdcard/", "/a"))
	assert.Equal(t, "/sdcard/a", Join("/sdcard/", "a"))
	assert.Equal(t, "/sdcard/a", Join("/sdcard", "/a"))
	assert.Equal(t, "/sdcard", Join("/sdcard", ""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/sdcard", NormalizeRoot("/sdcard/"))
	assert.Equal(t, "/", NormalizeRoot("/"))
	assert.Equal(t, "/", NormalizeRoot(""))
	assert.Equal(t, "/files", NormalizePrefix("files"))
	assert.Equal(t, "/files", NormalizePrefix("/files/"))
	assert.Equal(t, "", NormalizePrefix("/"))
}

func TestHref(t *testing.T) {
	assert.Equal(t, "/files/a%20b/", Href("/files", "/a b", true))
	assert.Equal(t, "/files/a%20b.txt", Href("/files", "/a b.txt", false))
	assert.Equal(t, "/files/", Href("/files", "/", true))
	assert.Equal(t, "/", Href("", "/", true))
	assert.Equal(t, "/x%23y.txt", Href("", "/x#y.txt", false))
	assert.Equal(t, "/files/a%2Bb.txt", Href("/files", "/a+b.txt", false))
	assert.Equal(t, "/files/c%2B%2B/", Href("/files", "/c++", true))
}
