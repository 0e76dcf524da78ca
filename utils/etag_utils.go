package utils

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ETag 基于路径/大小/修改时间计算弱校验值, 任意一项变化都会产生新值
func ETag(p string, size int64, mtime time.Time) string {
	d := xxhash.New()
	_, _ = d.WriteString(p)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(size))
	_, _ = d.Write(buf)
	binary.BigEndian.PutUint64(buf, uint64(mtime.UnixNano()))
	_, _ = d.Write(buf)
	binary.BigEndian.PutUint64(buf, d.Sum64())
	return strconv.Quote(hex.EncodeToString(buf))
}
