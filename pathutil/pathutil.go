package pathutil

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrPrefixMismatch = errors.New("url prefix mismatch")
)

// ResolvedPath 请求路径映射到root之后的结果, Abs必定位于root之下
type ResolvedPath struct {
	Abs string // 存储侧的绝对路径
	Rel string // 相对root的路径, 以'/'开头, root本身为"/"
}

// IsRoot 是否为root本身
func (r *ResolvedPath) IsRoot() bool {
	return r.Rel == "/"
}

// NormalizeRoot 去掉末尾的'/', 根目录保持为"/"
func NormalizeRoot(root string) string {
	root = strings.TrimSpace(root)
	if len(root) == 0 {
		return "/"
	}
	root = path.Clean(root)
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	return root
}

// NormalizePrefix 前缀统一为'/xxx'形式, 空值及"/"统一返回""
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.Trim(prefix, "/")
	if len(prefix) == 0 {
		return ""
	}
	return "/" + path.Clean(prefix)
}

// Join 拼接root与子路径, 保证两者之间有且仅有一个分隔符
func Join(first, second string) string {
	if len(second) == 0 {
		return first
	}
	trailing := strings.HasSuffix(first, "/")
	absolute := strings.HasPrefix(second, "/")
	switch {
	case !trailing && !absolute:
		return first + "/" + second
	case trailing && absolute:
		return first[:len(first)-1] + second
	default:
		return first + second
	}
}

// StripPrefix 按段边界去除前缀, 不匹配时返回ErrPrefixMismatch
func StripPrefix(prefix, rawURL string) (string, error) {
	prefix = NormalizePrefix(prefix)
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	if !strings.HasPrefix(rawURL, prefix) {
		return "", fmt.Errorf("url:%s, prefix:%s, err:%w", rawURL, prefix, ErrPrefixMismatch)
	}
	rest := rawURL[len(prefix):]
	if len(rest) != 0 && !strings.HasPrefix(rest, "/") { // "/sdcardx" 不属于 "/sdcard"
		return "", fmt.Errorf("url:%s, prefix:%s, err:%w", rawURL, prefix, ErrPrefixMismatch)
	}
	return rest, nil
}

// Resolve 将请求url(未解码的path部分)映射到root下的路径
func Resolve(root, prefix, rawURL string) (*ResolvedPath, error) {
	root = NormalizeRoot(root)
	rest, err := StripPrefix(prefix, rawURL)
	if err != nil {
		return nil, err
	}
	decoded, err := url.QueryUnescape(rest)
	if err != nil {
		return nil, fmt.Errorf("decode url failed, url:%s, err:%w", rawURL, ErrInvalidPath)
	}
	if strings.ContainsAny(decoded, "\x00\\") {
		return nil, fmt.Errorf("invalid char in path, url:%s, err:%w", rawURL, ErrInvalidPath)
	}
	for _, seg := range strings.Split(decoded, "/") {
		if seg == ".." {
			return nil, fmt.Errorf("parent segment in path, url:%s, err:%w", rawURL, ErrInvalidPath)
		}
	}
	rel := path.Clean("/" + decoded)
	abs := path.Clean(Join(root, rel))
	if !IsWithin(root, abs) {
		return nil, fmt.Errorf("path escape root, url:%s, err:%w", rawURL, ErrInvalidPath)
	}
	return &ResolvedPath{Abs: abs, Rel: rel}, nil
}

// IsWithin 判断p是否位于root(含root本身)之下, 纯字面比较
func IsWithin(root, p string) bool {
	root = NormalizeRoot(root)
	p = path.Clean(p)
	if root == "/" {
		return strings.HasPrefix(p, "/")
	}
	return p == root || strings.HasPrefix(p, root+"/")
}

// Href 构建对外可见的url路径, 每一段都做转义, '+'同样转义避免被当作空格
func Href(prefix, rel string, isDir bool) string {
	p := Join(NormalizePrefix(prefix), rel)
	if len(p) == 0 {
		p = "/"
	}
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	if !isDir && len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	u := &url.URL{Path: p}
	return strings.ReplaceAll(u.EscapedPath(), "+", "%2B")
}
