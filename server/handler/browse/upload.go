package browse

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/transfer"
	"go.uber.org/zap"
)

const (
	uploadSuccessMessage = "upload success"
)

// uploadFileName 仅保留文件名本身, 不允许借助文件名跳出目标目录
func uploadFileName(name string) (string, error) {
	if strings.ContainsAny(name, "\x00\\") {
		return "", fmt.Errorf("invalid upload name:%q, err:%w", name, pathutil.ErrInvalidPath)
	}
	name = path.Base(name)
	if name == "." || name == ".." || name == "/" || len(name) == 0 {
		return "", fmt.Errorf("invalid upload name:%q, err:%w", name, pathutil.ErrInvalidPath)
	}
	return name, nil
}

// HandleUpload multipart上传到url指向的目录, 文件内容按块流式写入, 不在内存中缓存整个文件
func (h *BrowseHandler) HandleUpload(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.c.UploadEnabled {
		httpkit.Fail(c, httpkit.ErrUploadDisabled)
		return
	}
	rp, ok := h.resolve(c)
	if !ok {
		return
	}
	isDir, err := h.c.Store.IsDirectory(ctx, rp.Abs)
	if err != nil || !isDir {
		httpkit.Fail(c, fmt.Errorf("path:%s, cause:%v, err:%w", rp.Abs, err, httpkit.ErrInvalidUploadFolder))
		return
	}
	reader, err := c.Request.MultipartReader()
	if err != nil {
		httpkit.Fail(c, fmt.Errorf("open multipart reader failed, cause:%v, err:%w", err, httpkit.ErrBadRequest))
		return
	}
	count := 0
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			httpkit.Fail(c, fmt.Errorf("read multipart failed, cause:%v, err:%w", err, httpkit.ErrBadRequest))
			return
		}
		if len(part.FileName()) == 0 { //普通表单字段
			_ = part.Close()
			continue
		}
		name, err := uploadFileName(part.FileName())
		if err != nil {
			_ = part.Close()
			httpkit.Fail(c, err)
			return
		}
		dst := pathutil.Join(rp.Abs, name)
		sess := transfer.NewSession(h.c.Store, dst, transfer.WithAtomic(h.c.AtomicUpload))
		n, err := h.c.Receive(ctx, sess, part)
		_ = part.Close()
		if err != nil {
			httpkit.Fail(c, fmt.Errorf("save upload file failed, path:%s, err:%w", dst, err))
			return
		}
		count++
		logutil.GetLogger(ctx).Info("file uploaded", zap.String("path", dst), zap.String("size", humanize.IBytes(uint64(n))))
	}
	if count == 0 {
		httpkit.Fail(c, fmt.Errorf("no file found in form, err:%w", httpkit.ErrBadRequest))
		return
	}
	c.Header("Connection", "close")
	c.Data(http.StatusCreated, "text/html; charset=utf-8", []byte(uploadSuccessMessage))
}
