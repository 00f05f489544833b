package api

import (
	"accountstore/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"

	// 认证错误码
	ErrCodeInvalidPassword = "ERR_INVALID_PASSWORD"
	ErrCodeAccountExpired  = "ERR_ACCOUNT_EXPIRED"
	ErrCodeSessionExpired  = "ERR_SESSION_EXPIRED"
	ErrCodeChangeRefused   = "ERR_PASSWORD_CHANGE_REFUSED"
	ErrCodeWeakPassword    = "ERR_WEAK_PASSWORD"

	// 账户错误码
	ErrCodeAccountNotFound   = "ERR_ACCOUNT_NOT_FOUND"
	ErrCodeInvalidUsername   = "ERR_INVALID_USERNAME"
	ErrCodeDuplicateUsername = "ERR_DUPLICATE_USERNAME"
	ErrCodeTimeSet           = "ERR_TIME_SET"
	ErrCodeInvalidTimeFormat = "ERR_INVALID_TIME_FORMAT"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// InvalidUsername 用户名为空或带首尾空白。用户名按原样精确匹配，不做裁剪
func InvalidUsername(c *gin.Context, username string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidUsername,
		"username must be non-empty without surrounding whitespace", gin.H{"username": username})
}

// validUsername 用户名非空且没有首尾空白
func validUsername(username string) bool {
	return username != "" && strings.TrimSpace(username) == username
}

// respondServiceError 将账户服务的错误类型映射为 HTTP 响应
func respondServiceError(c *gin.Context, err error, fallback string) {
	var opErr service.OpError
	message := err.Error()
	if errors.As(err, &opErr) && opErr.Msg != "" {
		message = opErr.Msg
	}

	switch {
	case service.IsDuplicateValue(err):
		ErrorResponse(c, http.StatusConflict, ErrCodeDuplicateUsername, message)
	case service.IsTimeSet(err):
		BadRequest(c, ErrCodeTimeSet, message)
	case service.IsFormat(err):
		BadRequest(c, ErrCodeInvalidTimeFormat, message)
	case service.IsInvalidInput(err):
		BadRequest(c, ErrCodeInvalidRequest, message)
	case service.IsPassword(err):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidPassword, "wrong password")
	case service.IsAccount(err):
		NotFound(c, ErrCodeAccountNotFound, "account not found")
	default:
		logrus.WithError(err).Error(fallback)
		InternalError(c, fallback)
	}
}
