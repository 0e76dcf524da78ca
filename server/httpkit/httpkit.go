package httpkit

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/transfer"
	"github.com/xxxsen/sdwebdav/utils"
)

const (
	defaultMimeType = "application/octet-stream"
	sniffLength     = 512
)

func DetermineMimeType(filename string) string {
	ext := path.Ext(filename)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return defaultMimeType
	}
	return mimeType
}

// SniffMimeType 扩展名无法识别时读取文件头判断类型, 完成后rs回到起始位置
func SniffMimeType(filename string, rs io.ReadSeeker) string {
	if mimeType := mime.TypeByExtension(path.Ext(filename)); mimeType != "" {
		return mimeType
	}
	buf := make([]byte, sniffLength)
	n, err := io.ReadFull(rs, buf)
	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		return defaultMimeType
	}
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return defaultMimeType
	}
	return mimetype.Detect(buf[:n]).String()
}

func ETag(finfo *filestore.FileInfo) string {
	return utils.ETag(finfo.Path, finfo.Size, finfo.ModTime)
}

func LastModified(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// SetDownloadHeader 文件下载相关的头部, attachment=true时浏览器会直接保存文件
func SetDownloadHeader(c *gin.Context, finfo *filestore.FileInfo, contentType string, attachment bool) {
	if len(contentType) == 0 {
		contentType = DetermineMimeType(finfo.Name())
	}
	h := c.Writer.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.FormatInt(finfo.Size, 10))
	h.Set("Last-Modified", LastModified(finfo.ModTime))
	h.Set("ETag", ETag(finfo))
	h.Set("Accept-Ranges", "none")
	if attachment {
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": finfo.Name()}))
	}
}

type rawWriterKey struct{}

// WithResponseWriter 保存原始的ResponseWriter, 用于后续通过ResponseController调整连接超时
func WithResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, rawWriterKey{}, w)
}

// ReadDeadlineSetter 返回设置读超时的函数, 底层连接不支持时返回的函数不做任何事
func ReadDeadlineSetter(ctx context.Context) transfer.DeadlineSetter {
	w, ok := ctx.Value(rawWriterKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}
	rc := http.NewResponseController(w)
	return func(t time.Time) error {
		if err := rc.SetReadDeadline(t); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	}
}
