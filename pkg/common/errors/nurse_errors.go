// pkg/common/errors/nurse_errors.go

/*
  - 使用实例
    // 业务层只比较哨兵错误:
    if errors.Is(err, apperrors.ErrNurseNotFound) {
    // 404
    }

    // 需要元数据时使用 Hertz 错误:
    if hzteErr, ok := err.(*hzte.Error); ok {
    // 安全访问 Meta
    }
*/
package errors

import (
	"errors"
	"net/http"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

// 错误分类
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrDuplicateUser      = errors.New("a nurse with this username already exists")
	ErrNurseNotFound      = errors.New("nurse not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreInternal      = errors.New("record store internal error")
)

// NewPublic 包装为可以对外暴露的 Hertz 错误
func NewPublic(err error, meta interface{}) *hzte.Error {
	return hzte.New(err, hzte.ErrorTypePublic, meta)
}

// NewPrivate 包装为仅记录日志的 Hertz 错误
func NewPrivate(err error, meta interface{}) *hzte.Error {
	return hzte.New(err, hzte.ErrorTypePrivate, meta)
}

// StatusCode maps the error taxonomy onto HTTP status codes.
// Unknown errors are treated as internal failures.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, ErrNurseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
