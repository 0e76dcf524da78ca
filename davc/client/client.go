package client

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound = errors.New("remote path not found")
)

// FileInfo 远端文件信息, Path为相对于url前缀的路径
type FileInfo struct {
	Path    string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

type IClient interface {
	Stat(ctx context.Context, remote string) (*FileInfo, error)
	List(ctx context.Context, remote string) ([]*FileInfo, error)
	Mkdir(ctx context.Context, remote string) error
	// PutPart 写入[start, start+size)区间, start为0时创建(覆盖)文件
	PutPart(ctx context.Context, remote string, start int64, size int64, total int64, r io.Reader) error
	Delete(ctx context.Context, remote string) error
}
