package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/metrics"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/render"
	"github.com/xxxsen/sdwebdav/transfer"
	"github.com/xxxsen/sdwebdav/utils"
)

// Config webdav与browse两种模式共用的运行参数, 创建后只读
type Config struct {
	Store           filestore.IFileStore
	Root            string
	Prefix          string // webdav前缀
	BrowsePrefix    string // 为空表示未开启browse模式
	DownloadEnabled bool
	UploadEnabled   bool
	DeletionEnabled bool
	BufferSize      int
	IdleTimeout     time.Duration
	AtomicUpload    bool
	Metrics         *metrics.Metrics
}

func (c *Config) BrowseEnabled() bool {
	return len(c.BrowsePrefix) > 0
}

// Resolve 将请求路径映射到root下
func (c *Config) Resolve(prefix string, r *http.Request) (*pathutil.ResolvedPath, error) {
	return pathutil.Resolve(c.Root, prefix, r.URL.EscapedPath())
}

// Send 将文件内容分块写回客户端
func (c *Config) Send(ctx context.Context, w io.Writer, rc io.ReadCloser) (int64, error) {
	n, err := transfer.Send(ctx, w, rc, c.BufferSize)
	c.Metrics.RecordTransfer(metrics.DirectionDownload, n)
	return n, err
}

// Receive 将请求体写入上传会话, 客户端停滞超过IdleTimeout时以ErrIdleTimeout结束
func (c *Config) Receive(ctx context.Context, sess *transfer.Session, r io.Reader) (int64, error) {
	opts := []transfer.ReceiveOption{
		transfer.WithBufferSize(c.BufferSize),
		transfer.WithObserver(func(n int) {
			c.Metrics.RecordTransfer(metrics.DirectionUpload, int64(n))
		}),
	}
	if c.IdleTimeout > 0 {
		if fn := httpkit.ReadDeadlineSetter(ctx); fn != nil {
			opts = append(opts, transfer.WithIdleTimeout(c.IdleTimeout, fn))
		}
	}
	return transfer.Receive(ctx, sess, r, opts...)
}

// ListChildren 列出直接子级(目录在前), 过滤上传中的临时文件
func (c *Config) ListChildren(ctx context.Context, rp *pathutil.ResolvedPath) ([]*filestore.FileInfo, error) {
	items, err := c.Store.List(ctx, rp.Abs, 0)
	if err != nil {
		return nil, err
	}
	rs := make([]*filestore.FileInfo, 0, len(items))
	for _, item := range items {
		if utils.IsTempName(item.Name()) {
			continue
		}
		rs = append(rs, item)
	}
	render.SortEntries(rs)
	return rs, nil
}
