package filestore

import (
	"context"
	"io"
	"os"
	"path"
	"sort"

	"github.com/spf13/afero"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/utils"
	"go.uber.org/zap"
)

const (
	defaultDirMode        = 0755
	defaultFileMode       = 0644
	defaultCopyBufferSize = 32 * 1024
)

type aferoStore struct {
	fs afero.Fs
}

// New 基于afero构建存储, 生产环境使用afero.NewOsFs(), 测试使用afero.NewMemMapFs()
func New(fs afero.Fs) IFileStore {
	return &aferoStore{fs: fs}
}

// NewOSStore 直接操作本地文件系统
func NewOSStore() IFileStore {
	return New(afero.NewOsFs())
}

func (s *aferoStore) toInfo(p string, fi os.FileInfo) *FileInfo {
	info := &FileInfo{
		Path:    p,
		IsDir:   fi.IsDir(),
		ModTime: fi.ModTime(),
	}
	if !fi.IsDir() {
		info.Size = fi.Size()
	}
	return info
}

func (s *aferoStore) Stat(ctx context.Context, p string) (*FileInfo, error) {
	fi, err := s.fs.Stat(p)
	if err != nil {
		return nil, wrapErr("stat", p, err)
	}
	return s.toInfo(path.Clean(p), fi), nil
}

func (s *aferoStore) IsDirectory(ctx context.Context, p string) (bool, error) {
	info, err := s.Stat(ctx, p)
	if err != nil {
		return false, err
	}
	return info.IsDir, nil
}

func (s *aferoStore) List(ctx context.Context, p string, depth int) ([]*FileInfo, error) {
	rs := make([]*FileInfo, 0, 32)
	if err := s.listRec(ctx, path.Clean(p), depth, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *aferoStore) listRec(ctx context.Context, dir string, depth int, rs *[]*FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fi, err := s.fs.Stat(dir)
	if err != nil {
		return wrapErr("list", dir, err)
	}
	if !fi.IsDir() {
		return wrapErr("list", dir, ErrNotDirectory)
	}
	items, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return wrapErr("list", dir, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name() < items[j].Name()
	})
	for _, item := range items {
		child := path.Join(dir, item.Name())
		*rs = append(*rs, s.toInfo(child, item))
		if !item.IsDir() || depth <= 0 {
			continue
		}
		if err := s.listRec(ctx, child, depth-1, rs); err != nil {
			return err
		}
	}
	return nil
}

func (s *aferoStore) OpenRead(ctx context.Context, p string) (io.ReadSeekCloser, error) {
	fi, err := s.fs.Stat(p)
	if err != nil {
		return nil, wrapErr("open", p, err)
	}
	if fi.IsDir() {
		return nil, wrapErr("open", p, ErrIsDirectory)
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, wrapErr("open", p, err)
	}
	return f, nil
}

func (s *aferoStore) checkParent(p string) error {
	parent := path.Dir(p)
	fi, err := s.fs.Stat(parent)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

func (s *aferoStore) openWrite(op string, p string, flag int) (io.WriteCloser, error) {
	if err := s.checkParent(p); err != nil {
		return nil, wrapErr(op, p, err)
	}
	if fi, err := s.fs.Stat(p); err == nil && fi.IsDir() {
		return nil, wrapErr(op, p, ErrIsDirectory)
	}
	f, err := s.fs.OpenFile(p, flag, defaultFileMode)
	if err != nil {
		return nil, wrapErr(op, p, err)
	}
	return f, nil
}

func (s *aferoStore) CreateOrTruncate(ctx context.Context, p string) (io.WriteCloser, error) {
	return s.openWrite("create", p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func (s *aferoStore) Append(ctx context.Context, p string) (io.WriteCloser, error) {
	if _, err := s.fs.Stat(p); err != nil {
		return nil, wrapErr("append", p, err)
	}
	return s.openWrite("append", p, os.O_WRONLY|os.O_APPEND)
}

func (s *aferoStore) Delete(ctx context.Context, p string) error {
	fi, err := s.fs.Stat(p)
	if err != nil {
		return wrapErr("delete", p, err)
	}
	if fi.IsDir() {
		return wrapErr("delete", p, ErrIsDirectory)
	}
	return wrapErr("delete", p, s.fs.Remove(p))
}

func (s *aferoStore) Mkdir(ctx context.Context, p string) error {
	if _, err := s.fs.Stat(p); err == nil {
		return wrapErr("mkdir", p, ErrAlreadyExists)
	}
	if err := s.checkParent(p); err != nil {
		return wrapErr("mkdir", p, err)
	}
	return wrapErr("mkdir", p, s.fs.Mkdir(p, defaultDirMode))
}

func (s *aferoStore) Rmdir(ctx context.Context, p string) error {
	fi, err := s.fs.Stat(p)
	if err != nil {
		return wrapErr("rmdir", p, err)
	}
	if !fi.IsDir() {
		return wrapErr("rmdir", p, ErrNotDirectory)
	}
	return wrapErr("rmdir", p, s.fs.RemoveAll(p))
}

func (s *aferoStore) Rename(ctx context.Context, oldp, newp string) error {
	if _, err := s.fs.Stat(oldp); err != nil {
		return wrapErr("rename", oldp, err)
	}
	if err := s.checkParent(newp); err != nil {
		return wrapErr("rename", newp, err)
	}
	return wrapErr("rename", oldp, s.fs.Rename(oldp, newp))
}

func (s *aferoStore) CopyFile(ctx context.Context, src, dst string) error {
	r, err := s.OpenRead(ctx, src)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := s.CreateOrTruncate(ctx, dst)
	if err != nil {
		return err
	}
	n, err := utils.CopyWithContext(ctx, w, r, make([]byte, defaultCopyBufferSize))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return wrapErr("copy", dst, err)
	}
	logutil.GetLogger(ctx).Debug("copy file finish", zap.String("src", src), zap.String("dst", dst), zap.Int64("size", n))
	return nil
}
