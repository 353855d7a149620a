package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误类型
// 用于统一管理业务错误，包含错误码和错误消息
type AppError struct {
	Code    int    // 错误码
	Message string // 用户可见的错误消息
	Err     error  // 原始错误（可选，用于调试）
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError 创建新错误
func NewError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装原始错误
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Is 判断是否为指定错误
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == target.Code
	}
	return false
}

// GetCode 获取错误码，如果不是 AppError 返回默认错误码
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServerError
}

// GetMessage 获取错误消息
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// ============== 错误码定义 ==============

const (
	CodeSuccess = 0

	// 认证相关 10000-10999
	CodeTokenInvalid = 10003
	CodeTokenExpired = 10004

	// 用户相关 11000-11999
	CodeUserNotFound  = 11001
	CodeInvalidParams = 11002

	// 群组排名相关 13000-13999
	CodeGroupNotFound = 13001
	CodeGroupTooNew   = 13002

	// 提醒相关 14000-14999
	CodeAlreadyNudged   = 14001
	CodeCannotNudgeSelf = 14002

	// 通知相关 15000-15999
	CodeNotificationNotFound = 15001

	// 系统错误 50000-50999
	CodeServerError        = 50001
	CodeDBError            = 50002
	CodeTooManyRequest     = 50003
	CodeServiceUnavailable = 50004
)

// ============== 预定义错误 ==============

// 认证相关
var (
	ErrTokenInvalid = NewError(CodeTokenInvalid, "token is invalid")
	ErrTokenExpired = NewError(CodeTokenExpired, "token has expired")
)

// 用户相关
var (
	ErrUserNotFound  = NewError(CodeUserNotFound, "user not found")
	ErrInvalidParams = NewError(CodeInvalidParams, "invalid parameters")
)

// 群组排名相关
var (
	ErrGroupNotFound = NewError(CodeGroupNotFound, "group not found")
	ErrGroupTooNew   = NewError(CodeGroupTooNew, "new groups are ranked starting next week")
)

// 提醒相关
var (
	ErrAlreadyNudged   = NewError(CodeAlreadyNudged, "already nudged this user today")
	ErrCannotNudgeSelf = NewError(CodeCannotNudgeSelf, "cannot nudge yourself")
)

// 通知相关
var (
	ErrNotificationNotFound = NewError(CodeNotificationNotFound, "notification not found")
)

// 系统相关
var (
	ErrServerError        = NewError(CodeServerError, "internal server error")
	ErrDBError            = NewError(CodeDBError, "database error")
	ErrTooManyRequest     = NewError(CodeTooManyRequest, "too many requests, please retry later")
	ErrServiceUnavailable = NewError(CodeServiceUnavailable, "service temporarily unavailable")
)
