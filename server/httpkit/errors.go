package httpkit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/transfer"
	"go.uber.org/zap"
)

var (
	ErrFeatureDisabled      = errors.New("feature disabled")
	ErrOperationDenied      = errors.New("operation denied")
	ErrUnsupported          = errors.New("unsupported")
	ErrBadRequest           = errors.New("bad request")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// PublicError 可以直接返回给客户端的错误信息
type PublicError struct {
	kind error
	msg  string
}

func NewPublicError(kind error, msg string) *PublicError {
	return &PublicError{kind: kind, msg: msg}
}

func (e *PublicError) Error() string {
	return e.msg
}

func (e *PublicError) Is(target error) bool {
	return target == e.kind
}

var (
	ErrUploadDisabled      = NewPublicError(ErrFeatureDisabled, "file upload is disabled")
	ErrDownloadDisabled    = NewPublicError(ErrFeatureDisabled, "file download is disabled")
	ErrDeletionDisabled    = NewPublicError(ErrFeatureDisabled, "file deletion is disabled")
	ErrInvalidUploadFolder = NewPublicError(ErrOperationDenied, "invalid upload folder")
	ErrDeleteDirectory     = NewPublicError(ErrOperationDenied, "cannot delete a directory")
)

type statusPair struct {
	err  error
	code int
}

// 按顺序匹配, 越具体的错误越靠前
var statusTable = []statusPair{
	{pathutil.ErrInvalidPath, http.StatusBadRequest},
	{ErrBadRequest, http.StatusBadRequest},
	{transfer.ErrInvalidContentRange, http.StatusBadRequest},
	{pathutil.ErrPrefixMismatch, http.StatusNotFound},
	{filestore.ErrNotFound, http.StatusNotFound},
	{filestore.ErrAlreadyExists, http.StatusMethodNotAllowed},
	{filestore.ErrIsDirectory, http.StatusMethodNotAllowed},
	{ErrFeatureDisabled, http.StatusUnauthorized},
	{ErrOperationDenied, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{transfer.ErrParentNotFound, http.StatusConflict},
	{filestore.ErrNotDirectory, http.StatusConflict},
	{ErrConflict, http.StatusConflict},
	{ErrPreconditionFailed, http.StatusPreconditionFailed},
	{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{transfer.ErrOffsetMismatch, http.StatusRequestedRangeNotSatisfiable},
	{transfer.ErrIdleTimeout, http.StatusRequestTimeout},
	{ErrUnsupported, http.StatusNotImplemented},
}

// StatusOf 错误到http状态码的映射, 未知错误一律500
func StatusOf(err error) int {
	for _, item := range statusTable {
		if errors.Is(err, item.err) {
			return item.code
		}
	}
	return http.StatusInternalServerError
}

// MessageOf 返回给客户端的错误信息, 内部错误不直接暴露
func MessageOf(err error) string {
	var perr *PublicError
	if errors.As(err, &perr) {
		return perr.msg
	}
	return http.StatusText(StatusOf(err))
}

// FailJSON 以{"error": msg}的形式返回错误
func FailJSON(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// Fail 记录错误并按错误类型返回对应状态码
func Fail(c *gin.Context, err error) {
	code := StatusOf(err)
	logger := logutil.GetLogger(c.Request.Context()).With(zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path), zap.Int("code", code))
	if code >= http.StatusInternalServerError {
		logger.Error("handle request failed", zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.Error(err))
	}
	FailJSON(c, code, MessageOf(err))
}
