package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xxxsen/sdwebdav/utils"
)

const (
	DefaultBufferSize = 2048
)

var (
	ErrClientWrite = errors.New("write to client failed")
)

// Send 按固定大小分块读取rc并写入w, 每块之间检查ctx, 无论成功与否都会关闭rc
func Send(ctx context.Context, w io.Writer, rc io.ReadCloser, bufSize int) (int64, error) {
	defer rc.Close()
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	buf := getBuffer(bufSize)
	defer putBuffer(buf)
	n, err := utils.CopyWithContext(ctx, w, rc, *buf)
	if errors.Is(err, utils.ErrWriteFailed) {
		return n, fmt.Errorf("cause:%v, err:%w", err, ErrClientWrite)
	}
	return n, err
}
