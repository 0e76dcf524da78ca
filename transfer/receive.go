package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

var (
	ErrIdleTimeout = errors.New("upload idle timeout")
)

// DeadlineSetter 一般为http.ResponseController.SetReadDeadline
type DeadlineSetter func(t time.Time) error

type receiveConfig struct {
	bufSize     int
	idleTimeout time.Duration
	setDeadline DeadlineSetter
	observer    func(n int)
}

type ReceiveOption func(c *receiveConfig)

func WithBufferSize(n int) ReceiveOption {
	return func(c *receiveConfig) {
		c.bufSize = n
	}
}

// WithIdleTimeout 每次读取前重新设置读超时, 客户端停滞超过d即结束上传
func WithIdleTimeout(d time.Duration, fn DeadlineSetter) ReceiveOption {
	return func(c *receiveConfig) {
		c.idleTimeout = d
		c.setDeadline = fn
	}
}

// WithObserver 每写入一块数据回调一次, 用于统计
func WithObserver(fn func(n int)) ReceiveOption {
	return func(c *receiveConfig) {
		c.observer = fn
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// Receive 将r中的数据按块写入sess, r读完时以final块结束会话, 任何失败都会Abort会话
func Receive(ctx context.Context, sess *Session, r io.Reader, opts ...ReceiveOption) (int64, error) {
	c := &receiveConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.bufSize <= 0 {
		c.bufSize = DefaultBufferSize
	}
	buf := getBuffer(c.bufSize)
	defer putBuffer(buf)
	armed := c.idleTimeout > 0 && c.setDeadline != nil
	timedOut := false
	if armed {
		// 超时后保持过期的deadline, 连接上剩余的请求体不会再被读取
		defer func() {
			if !timedOut {
				_ = c.setDeadline(time.Time{})
			}
		}()
	}
	offset := sess.Offset()
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			_ = sess.Abort(ctx)
			return total, fmt.Errorf("receive canceled, recv:%d, err:%w", total, err)
		}
		if armed {
			_ = c.setDeadline(time.Now().Add(c.idleTimeout))
		}
		n, rerr := io.ReadFull(r, *buf)
		final := errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF)
		if rerr != nil && !final {
			_ = sess.Abort(ctx)
			if isTimeout(rerr) {
				timedOut = true
				return total, fmt.Errorf("recv:%d, cause:%v, err:%w", total, rerr, ErrIdleTimeout)
			}
			return total, fmt.Errorf("read body failed, recv:%d, err:%w", total, rerr)
		}
		if err := sess.Write(ctx, offset, (*buf)[:n], final); err != nil {
			return total, err
		}
		offset += int64(n)
		total += int64(n)
		if c.observer != nil && n > 0 {
			c.observer(n)
		}
		if final {
			return total, nil
		}
	}
}
