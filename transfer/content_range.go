package transfer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrInvalidContentRange = errors.New("invalid content range")
)

// ContentRange 续传时PUT请求携带的范围, Total为-1表示总长度未知
type ContentRange struct {
	Start int64
	End   int64
	Total int64
}

func (r *ContentRange) Length() int64 {
	return r.End - r.Start + 1
}

// IsLast 是否为文件的最后一段
func (r *ContentRange) IsLast() bool {
	return r.Total > 0 && r.End == r.Total-1
}

// Reader 限定body恰好为Length字节, 多出或不足时返回ErrInvalidContentRange
func (r *ContentRange) Reader(body io.Reader) io.Reader {
	return &rangeReader{r: body, remain: r.Length()}
}

type rangeReader struct {
	r      io.Reader
	remain int64
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.remain <= 0 {
		var extra [1]byte
		n, err := r.r.Read(extra[:])
		if n > 0 {
			return 0, fmt.Errorf("body longer than range, err:%w", ErrInvalidContentRange)
		}
		return 0, err
	}
	if int64(len(p)) > r.remain {
		p = p[:r.remain]
	}
	n, err := r.r.Read(p)
	r.remain -= int64(n)
	if errors.Is(err, io.EOF) && r.remain > 0 {
		return n, fmt.Errorf("body shorter than range, missing:%d, err:%w", r.remain, ErrInvalidContentRange)
	}
	return n, err
}

func (r *ContentRange) String() string {
	total := "*"
	if r.Total >= 0 {
		total = strconv.FormatInt(r.Total, 10)
	}
	return fmt.Sprintf("bytes %d-%d/%s", r.Start, r.End, total)
}

// ParseContentRange 解析"bytes <start>-<end>/<total>", total可以为"*"
func ParseContentRange(v string) (*ContentRange, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "bytes ") {
		return nil, fmt.Errorf("missing unit, value:%s, err:%w", v, ErrInvalidContentRange)
	}
	v = strings.TrimPrefix(v, "bytes ")
	parts := strings.SplitN(v, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("missing total, value:%s, err:%w", v, ErrInvalidContentRange)
	}
	se := strings.SplitN(parts[0], "-", 2)
	if len(se) != 2 {
		return nil, fmt.Errorf("invalid range, value:%s, err:%w", v, ErrInvalidContentRange)
	}
	r := &ContentRange{Total: -1}
	var err error
	if r.Start, err = strconv.ParseInt(se[0], 10, 64); err != nil || r.Start < 0 {
		return nil, fmt.Errorf("invalid start, value:%s, err:%w", v, ErrInvalidContentRange)
	}
	if r.End, err = strconv.ParseInt(se[1], 10, 64); err != nil || r.End < r.Start {
		return nil, fmt.Errorf("invalid end, value:%s, err:%w", v, ErrInvalidContentRange)
	}
	if parts[1] != "*" {
		if r.Total, err = strconv.ParseInt(parts[1], 10, 64); err != nil || r.Total <= 0 || r.End >= r.Total {
			return nil, fmt.Errorf("invalid total, value:%s, err:%w", v, ErrInvalidContentRange)
		}
	}
	return r, nil
}
