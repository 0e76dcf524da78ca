package client

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/sdwebdav/pathutil"
)

const (
	defaultTimeout = 30 * time.Second
)

type defaultClient struct {
	c   *config
	cli *http.Client
}

func (d *defaultClient) buildUrl(remote string, isDir bool) string {
	return fmt.Sprintf("%s://%s%s", d.c.Schema, d.c.Host, pathutil.Href(d.c.Prefix, cleanRemote(remote), isDir))
}

func cleanRemote(remote string) string {
	return path.Clean("/" + remote)
}

func (d *defaultClient) applyAuth(req *http.Request) {
	if len(d.c.User) == 0 {
		return
	}
	req.SetBasicAuth(d.c.User, d.c.Password)
}

func (d *defaultClient) do(ctx context.Context, method string, link string, body io.Reader, fn func(req *http.Request)) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, body)
	if err != nil {
		return nil, err
	}
	d.applyAuth(req)
	if fn != nil {
		fn(req)
	}
	return d.cli.Do(req)
}

func readError(rsp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(rsp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	er := &errorResponse{}
	if err := json.Unmarshal(raw, er); err == nil && len(er.Error) > 0 {
		msg = er.Error
	}
	if rsp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("msg:%s, err:%w", msg, ErrNotFound)
	}
	return fmt.Errorf("status code not ok, code:%d, msg:%s", rsp.StatusCode, msg)
}

func (d *defaultClient) propfind(ctx context.Context, remote string, depth string) ([]*FileInfo, error) {
	rsp, err := d.do(ctx, "PROPFIND", d.buildUrl(remote, false), nil, func(req *http.Request) {
		req.Header.Set("Depth", depth)
	})
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusMultiStatus {
		return nil, readError(rsp)
	}
	ms := &multistatus{}
	if err := xml.NewDecoder(rsp.Body).Decode(ms); err != nil {
		return nil, fmt.Errorf("decode multistatus failed, err:%w", err)
	}
	rs := make([]*FileInfo, 0, len(ms.Responses))
	for _, item := range ms.Responses {
		fi, err := d.toFileInfo(&item)
		if err != nil {
			return nil, err
		}
		rs = append(rs, fi)
	}
	return rs, nil
}

func (d *defaultClient) toFileInfo(item *davResponse) (*FileInfo, error) {
	href := item.Href
	if u, err := url.Parse(href); err == nil {
		href = u.EscapedPath()
	}
	rest, err := pathutil.StripPrefix(d.c.Prefix, href)
	if err != nil {
		return nil, err
	}
	p, err := url.PathUnescape(rest)
	if err != nil {
		return nil, fmt.Errorf("unescape href:%s failed, err:%w", item.Href, err)
	}
	fi := &FileInfo{Path: cleanRemote(p)}
	for _, ps := range item.Propstats {
		if !strings.Contains(ps.Status, " 200 ") {
			continue
		}
		fi.IsDir = ps.Prop.ResourceType.Collection != nil
		if len(ps.Prop.ContentLength) > 0 {
			if fi.Size, err = strconv.ParseInt(ps.Prop.ContentLength, 10, 64); err != nil {
				return nil, fmt.Errorf("invalid content length:%s, err:%w", ps.Prop.ContentLength, err)
			}
		}
		if t, err := http.ParseTime(ps.Prop.LastModified); err == nil {
			fi.ModTime = t
		}
	}
	return fi, nil
}

func (d *defaultClient) Stat(ctx context.Context, remote string) (*FileInfo, error) {
	items, err := d.propfind(ctx, remote, "0")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty multistatus, remote:%s, err:%w", remote, ErrNotFound)
	}
	return items[0], nil
}

func (d *defaultClient) List(ctx context.Context, remote string) ([]*FileInfo, error) {
	items, err := d.propfind(ctx, remote, "1")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty multistatus, remote:%s, err:%w", remote, ErrNotFound)
	}
	return items[1:], nil //第一项为目录本身
}

func (d *defaultClient) Mkdir(ctx context.Context, remote string) error {
	rsp, err := d.do(ctx, "MKCOL", d.buildUrl(remote, true), nil, nil)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusCreated {
		return readError(rsp)
	}
	return nil
}

func (d *defaultClient) PutPart(ctx context.Context, remote string, start int64, size int64, total int64, r io.Reader) error {
	rsp, err := d.do(ctx, http.MethodPut, d.buildUrl(remote, false), io.LimitReader(r, size), func(req *http.Request) {
		req.ContentLength = size
		if size == 0 {
			req.Body = http.NoBody
		}
		if start > 0 {
			req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, start+size-1, total))
		}
	})
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusCreated {
		return readError(rsp)
	}
	return nil
}

func (d *defaultClient) Delete(ctx context.Context, remote string) error {
	rsp, err := d.do(ctx, http.MethodDelete, d.buildUrl(remote, false), nil, nil)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusNoContent {
		return readError(rsp)
	}
	return nil
}

func New(opts ...Option) (IClient, error) {
	c := &config{
		Schema:  "https",
		Timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.Host) == 0 {
		return nil, fmt.Errorf("no host found")
	}
	return &defaultClient{
		c: c,
		cli: &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				IdleConnTimeout:     20 * time.Second,
				MaxIdleConns:        5,
				MaxIdleConnsPerHost: 1,
			},
		},
	}, nil
}
