package utils

import (
	"strings"

	"github.com/google/uuid"
)

const (
	tempFileSuffix = ".temp"
)

// TempName 基于dst生成一个同目录下的临时文件名, 写完后再通过rename覆盖目标文件
func TempName(dst string) string {
	return dst + "." + uuid.NewString() + tempFileSuffix
}

// IsTempName 判断是否为TempName生成的临时文件(列目录时需要隐藏)
func IsTempName(name string) bool {
	if !strings.HasSuffix(name, tempFileSuffix) {
		return false
	}
	name = strings.TrimSuffix(name, tempFileSuffix)
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	_, err := uuid.Parse(name[idx+1:])
	return err == nil
}
