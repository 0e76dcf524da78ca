package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/utils"
	"go.uber.org/zap"
)

var (
	ErrParentNotFound = errors.New("parent directory not found")
	ErrOffsetMismatch = errors.New("offset mismatch")
	ErrSessionClosed  = errors.New("session closed")
)

type sessionConfig struct {
	createParents bool
	atomic        bool
	startOffset   int64
}

type SessionOption func(c *sessionConfig)

// WithCreateParents 首块写入时自动创建缺失的父目录
func WithCreateParents(v bool) SessionOption {
	return func(c *sessionConfig) {
		c.createParents = v
	}
}

// WithAtomic 先写临时文件, 最后一块写完后再rename到目标位置
func WithAtomic(v bool) SessionOption {
	return func(c *sessionConfig) {
		c.atomic = v
	}
}

// WithStartOffset 续传, 目标文件当前大小必须等于offset
func WithStartOffset(offset int64) SessionOption {
	return func(c *sessionConfig) {
		c.startOffset = offset
	}
}

// Session 单次上传的状态机, 生命周期内只持有一个sink, 且只释放一次
type Session struct {
	c       *sessionConfig
	store   filestore.IFileStore
	dst     string
	target  string
	written int64
	started bool
	closed  bool
	sink    io.WriteCloser
}

func NewSession(store filestore.IFileStore, dst string, opts ...SessionOption) *Session {
	c := &sessionConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.startOffset > 0 { //续传只能原地追加
		c.atomic = false
	}
	return &Session{c: c, store: store, dst: dst, target: dst}
}

func (s *Session) Destination() string {
	return s.dst
}

// Written 本次会话已经写入的字节数(不含续传前已有的部分)
func (s *Session) Written() int64 {
	return s.written
}

// Offset 下一块数据期望的起始位置
func (s *Session) Offset() int64 {
	return s.c.startOffset + s.written
}

func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) ensureDir(ctx context.Context, dir string) error {
	info, err := s.store.Stat(ctx, dir)
	if err == nil {
		if !info.IsDir {
			return fmt.Errorf("parent:%s is not a directory, err:%w", dir, ErrParentNotFound)
		}
		return nil
	}
	if !errors.Is(err, filestore.ErrNotFound) {
		return err
	}
	if !s.c.createParents {
		return fmt.Errorf("parent:%s, err:%w", dir, ErrParentNotFound)
	}
	if parent := path.Dir(dir); parent != dir {
		if err := s.ensureDir(ctx, parent); err != nil {
			return err
		}
	}
	if err := s.store.Mkdir(ctx, dir); err != nil && !errors.Is(err, filestore.ErrAlreadyExists) {
		return fmt.Errorf("create parent:%s failed, err:%w", dir, err)
	}
	return nil
}

func (s *Session) open(ctx context.Context) error {
	if err := s.ensureDir(ctx, path.Dir(s.dst)); err != nil {
		return err
	}
	info, err := s.store.Stat(ctx, s.dst)
	if err != nil && !errors.Is(err, filestore.ErrNotFound) {
		return err
	}
	if err == nil && info.IsDir {
		return fmt.Errorf("upload target:%s, err:%w", s.dst, filestore.ErrIsDirectory)
	}
	if s.c.startOffset > 0 {
		if info == nil || info.Size != s.c.startOffset {
			var size int64
			if info != nil {
				size = info.Size
			}
			return fmt.Errorf("resume at:%d, current size:%d, err:%w", s.c.startOffset, size, ErrOffsetMismatch)
		}
		s.sink, err = s.store.Append(ctx, s.dst)
		return err
	}
	if s.c.atomic {
		s.target = utils.TempName(s.dst)
	}
	s.sink, err = s.store.CreateOrTruncate(ctx, s.target)
	return err
}

// Write 写入一块数据, offset为该块在目标文件中的起始位置, final=true时完成上传
func (s *Session) Write(ctx context.Context, offset int64, data []byte, final bool) error {
	if s.closed {
		return ErrSessionClosed
	}
	if offset != s.Offset() {
		_ = s.Abort(ctx)
		return fmt.Errorf("expect offset:%d, got:%d, err:%w", s.Offset(), offset, ErrOffsetMismatch)
	}
	if !s.started {
		s.started = true
		if err := s.open(ctx); err != nil {
			_ = s.Abort(ctx)
			return err
		}
	}
	if len(data) > 0 {
		n, err := s.sink.Write(data)
		s.written += int64(n)
		if err == nil && n != len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			_ = s.Abort(ctx)
			return fmt.Errorf("write chunk failed, dst:%s, cause:%v, err:%w", s.dst, err, filestore.ErrIO)
		}
	}
	if !final {
		return nil
	}
	return s.finish(ctx)
}

func (s *Session) finish(ctx context.Context) error {
	sink := s.sink
	s.sink = nil
	s.closed = true
	if err := sink.Close(); err != nil {
		s.cleanTemp(ctx)
		return fmt.Errorf("close sink failed, dst:%s, cause:%v, err:%w", s.dst, err, filestore.ErrIO)
	}
	if s.target == s.dst {
		return nil
	}
	if err := s.store.Rename(ctx, s.target, s.dst); err != nil {
		s.cleanTemp(ctx)
		return fmt.Errorf("replace target failed, dst:%s, err:%w", s.dst, err)
	}
	return nil
}

func (s *Session) cleanTemp(ctx context.Context) {
	if s.target == s.dst {
		return
	}
	if err := s.store.Delete(ctx, s.target); err != nil && !errors.Is(err, filestore.ErrNotFound) {
		logutil.GetLogger(ctx).Error("remove temp file failed", zap.String("temp", s.target), zap.Error(err))
	}
}

// Abort 放弃本次上传, 可重复调用; 非原子模式下已写入的部分会保留
func (s *Session) Abort(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.sink == nil {
		return nil
	}
	sink := s.sink
	s.sink = nil
	err := sink.Close()
	s.cleanTemp(ctx)
	logutil.GetLogger(ctx).Debug("upload session aborted", zap.String("dst", s.dst), zap.Int64("written", s.written))
	return err
}
