package davc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/sdwebdav/davc/client"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultThread   = 4
	defaultPartSize = 8 * 1024 * 1024
)

type DavClient struct {
	c *config
}

func New(opts ...Option) *DavClient {
	c := &config{
		Thread:   defaultThread,
		PartSize: defaultPartSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Thread <= 0 {
		c.Thread = defaultThread
	}
	if c.PartSize <= 0 {
		c.PartSize = defaultPartSize
	}
	return &DavClient{c: c}
}

// With 基于当前配置创建一个新的client
func (c *DavClient) With(opts ...Option) *DavClient {
	cc := *c.c
	for _, opt := range opts {
		opt(&cc)
	}
	return &DavClient{c: &cc}
}

func (c *DavClient) List(ctx context.Context, remote string) ([]*client.FileInfo, error) {
	return c.c.Client.List(ctx, remote)
}

func (c *DavClient) Stat(ctx context.Context, remote string) (*client.FileInfo, error) {
	return c.c.Client.Stat(ctx, remote)
}

func (c *DavClient) Remove(ctx context.Context, remote string) error {
	return c.c.Client.Delete(ctx, remote)
}

// MkdirAll 逐级创建远端目录, 已存在的目录直接跳过
func (c *DavClient) MkdirAll(ctx context.Context, remote string) error {
	cur := "/"
	for _, seg := range strings.Split(path.Clean("/"+remote), "/") {
		if len(seg) == 0 {
			continue
		}
		cur = path.Join(cur, seg)
		info, err := c.c.Client.Stat(ctx, cur)
		if err == nil {
			if !info.IsDir {
				return fmt.Errorf("remote path:%s is not a directory", cur)
			}
			continue
		}
		if !errors.Is(err, client.ErrNotFound) {
			return err
		}
		if err := c.c.Client.Mkdir(ctx, cur); err != nil {
			return fmt.Errorf("mkdir:%s failed, err:%w", cur, err)
		}
	}
	return nil
}

// remoteOffset 续传起点, 远端文件不可用时从0开始
func (c *DavClient) remoteOffset(ctx context.Context, remote string, size int64) int64 {
	if !c.c.Resume {
		return 0
	}
	info, err := c.c.Client.Stat(ctx, remote)
	if err != nil || info.IsDir || info.Size > size {
		return 0
	}
	return info.Size
}

// partUpload 上传[start, end)区间, 重试时以远端实际大小为准, 跳过已经写入的部分
func (c *DavClient) partUpload(ctx context.Context, f *os.File, remote string, start int64, end int64, total int64) error {
	offset := start
	retried := false
	return retry.RetryDo(ctx, 3, 2*time.Second, func(ctx context.Context) error {
		if retried && offset > 0 {
			if info, err := c.c.Client.Stat(ctx, remote); err == nil && !info.IsDir && info.Size >= start && info.Size <= end {
				offset = info.Size
			}
		}
		retried = true
		if offset == end && end > start {
			return nil
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return err
		}
		if err := c.c.Client.PutPart(ctx, remote, offset, end-offset, total, f); err != nil {
			logutil.GetLogger(ctx).Error("upload part failed, wait retry", zap.Error(err), zap.Int64("offset", offset))
			return err
		}
		return nil
	})
}

// UploadFile 按PartSize分段顺序上传, 第一段创建文件, 后续段通过Content-Range追加
func (c *DavClient) UploadFile(ctx context.Context, src string, remote string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("src:%s is a directory", src)
	}
	size := info.Size()
	offset := c.remoteOffset(ctx, remote, size)
	if offset == size && size > 0 {
		logutil.GetLogger(ctx).Info("remote file already complete, skip", zap.String("remote", remote))
		return nil
	}
	logutil.GetLogger(ctx).Debug("start upload file", zap.String("src", src), zap.String("remote", remote),
		zap.String("size", humanize.IBytes(uint64(size))), zap.Int64("offset", offset))
	for {
		end := offset + c.c.PartSize
		if end > size {
			end = size
		}
		start := time.Now()
		if err := c.partUpload(ctx, f, remote, offset, end, size); err != nil {
			return fmt.Errorf("upload part failed, offset:%d, err:%w", offset, err)
		}
		cost := time.Since(start)
		speed := "-"
		if ms := int64(cost / time.Millisecond); ms > 0 {
			speed = humanize.IBytes(uint64(float64(end-offset)*1000/float64(ms))) + "/s"
		}
		logutil.GetLogger(ctx).Debug("part upload finish", zap.Int64("offset", offset), zap.Duration("cost", cost), zap.String("speed", speed))
		offset = end
		if offset >= size {
			break
		}
	}
	return nil
}

// UploadFiles 并发上传多个本地文件到远端目录, 任一失败则整体失败
func (c *DavClient) UploadFiles(ctx context.Context, srcs []string, remoteDir string) error {
	if err := c.MkdirAll(ctx, remoteDir); err != nil {
		return err
	}
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.c.Thread)
	for _, src := range srcs {
		remote := path.Join("/", remoteDir, filepath.Base(src))
		eg.Go(func() error {
			start := time.Now()
			if err := c.UploadFile(subctx, src, remote); err != nil {
				return fmt.Errorf("upload file:%s failed, err:%w", src, err)
			}
			logutil.GetLogger(ctx).Info("file upload finish", zap.String("src", src), zap.String("remote", remote), zap.Duration("cost", time.Since(start)))
			return nil
		})
	}
	return eg.Wait()
}
