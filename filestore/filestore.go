package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"syscall"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrIsDirectory   = errors.New("is a directory")
	ErrNotDirectory  = errors.New("not a directory")
	ErrIO            = errors.New("io failure")
)

// FileInfo 文件元信息, 每次按需从存储读取, 不做缓存
type FileInfo struct {
	Path    string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

func (f *FileInfo) Name() string {
	return path.Base(f.Path)
}

// IFileStore 对外部存储(sd卡/本地目录)能力的抽象, 所有路径均为绝对路径
type IFileStore interface {
	Stat(ctx context.Context, p string) (*FileInfo, error)
	IsDirectory(ctx context.Context, p string) (bool, error)
	// List 列出p下的条目, depth=0 只返回直接子级, depth=n 额外向下展开n层
	List(ctx context.Context, p string, depth int) ([]*FileInfo, error)
	OpenRead(ctx context.Context, p string) (io.ReadSeekCloser, error)
	CreateOrTruncate(ctx context.Context, p string) (io.WriteCloser, error)
	Append(ctx context.Context, p string) (io.WriteCloser, error)
	Delete(ctx context.Context, p string) error
	Mkdir(ctx context.Context, p string) error
	// Rmdir 删除目录及其下所有内容
	Rmdir(ctx context.Context, p string) error
	Rename(ctx context.Context, oldp, newp string) error
	CopyFile(ctx context.Context, src, dst string) error
}

func wrapErr(op string, p string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR): //路径中间某一级是文件
		return fmt.Errorf("%s %s failed, err:%w", op, p, ErrNotFound)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%s %s failed, err:%w", op, p, ErrAlreadyExists)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrIsDirectory),
		errors.Is(err, ErrNotDirectory), errors.Is(err, ErrIO):
		return fmt.Errorf("%s %s failed, err:%w", op, p, err)
	}
	return fmt.Errorf("%s %s failed, cause:%v, err:%w", op, p, err, ErrIO)
}
