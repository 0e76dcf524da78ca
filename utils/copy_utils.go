package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrWriteFailed = errors.New("write failed")
)

// CopyWithContext 使用buf分块从r复制到w, 每块之前检查ctx
// 写失败的错误均包装为ErrWriteFailed, 读失败保留原始错误
func CopyWithContext(ctx context.Context, w io.Writer, r io.Reader, buf []byte) (int64, error) {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("copy canceled, copied:%d, err:%w", total, err)
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, fmt.Errorf("copied:%d, cause:%v, err:%w", total, werr, ErrWriteFailed)
			}
			if wn != n {
				return total, fmt.Errorf("short write, copied:%d, err:%w", total, ErrWriteFailed)
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, fmt.Errorf("read source failed, copied:%d, err:%w", total, rerr)
		}
	}
}
