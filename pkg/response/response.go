package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "sudooom.score/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 错误码常量（使用 pkg/errors 包的定义）
const (
	CodeSuccess = appErrors.CodeSuccess

	CodeTokenInvalid = appErrors.CodeTokenInvalid
	CodeTokenExpired = appErrors.CodeTokenExpired

	CodeUserNotFound  = appErrors.CodeUserNotFound
	CodeInvalidParams = appErrors.CodeInvalidParams

	CodeGroupNotFound = appErrors.CodeGroupNotFound
	CodeGroupTooNew   = appErrors.CodeGroupTooNew

	CodeAlreadyNudged   = appErrors.CodeAlreadyNudged
	CodeCannotNudgeSelf = appErrors.CodeCannotNudgeSelf

	CodeNotificationNotFound = appErrors.CodeNotificationNotFound

	CodeServerError        = appErrors.CodeServerError
	CodeDBError            = appErrors.CodeDBError
	CodeTooManyRequest     = appErrors.CodeTooManyRequest
	CodeServiceUnavailable = appErrors.CodeServiceUnavailable
)

var codeMessages = map[int]string{
	CodeSuccess:              "success",
	CodeTokenInvalid:         appErrors.ErrTokenInvalid.Message,
	CodeTokenExpired:         appErrors.ErrTokenExpired.Message,
	CodeUserNotFound:         appErrors.ErrUserNotFound.Message,
	CodeInvalidParams:        appErrors.ErrInvalidParams.Message,
	CodeGroupNotFound:        appErrors.ErrGroupNotFound.Message,
	CodeGroupTooNew:          appErrors.ErrGroupTooNew.Message,
	CodeAlreadyNudged:        appErrors.ErrAlreadyNudged.Message,
	CodeCannotNudgeSelf:      appErrors.ErrCannotNudgeSelf.Message,
	CodeNotificationNotFound: appErrors.ErrNotificationNotFound.Message,
	CodeServerError:          appErrors.ErrServerError.Message,
	CodeDBError:              appErrors.ErrDBError.Message,
	CodeTooManyRequest:       appErrors.ErrTooManyRequest.Message,
	CodeServiceUnavailable:   appErrors.ErrServiceUnavailable.Message,
}

// codeStatus 错误码对应的 HTTP 状态码，未列出的按 500 处理
var codeStatus = map[int]int{
	CodeTokenInvalid:         http.StatusUnauthorized,
	CodeTokenExpired:         http.StatusUnauthorized,
	CodeUserNotFound:         http.StatusNotFound,
	CodeInvalidParams:        http.StatusBadRequest,
	CodeGroupNotFound:        http.StatusNotFound,
	CodeGroupTooNew:          http.StatusConflict,
	CodeAlreadyNudged:        http.StatusConflict,
	CodeCannotNudgeSelf:      http.StatusBadRequest,
	CodeNotificationNotFound: http.StatusNotFound,
	CodeTooManyRequest:       http.StatusTooManyRequests,
	CodeServiceUnavailable:   http.StatusServiceUnavailable,
}

// StatusOf 获取错误码对应的 HTTP 状态码
func StatusOf(code int) int {
	if code == CodeSuccess {
		return http.StatusOK
	}
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int) {
	message := codeMessages[code]
	if message == "" {
		message = "unknown error"
	}
	ErrorWithMsg(c, code, message)
}

// ErrorWithMsg 自定义错误消息
func ErrorWithMsg(c *gin.Context, code int, message string) {
	c.JSON(StatusOf(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorFromAppError 从 AppError 生成错误响应
func ErrorFromAppError(c *gin.Context, err error) {
	ErrorWithMsg(c, appErrors.GetCode(err), appErrors.GetMessage(err))
}

// Unauthorized 未认证
func Unauthorized(c *gin.Context) {
	Error(c, CodeTokenInvalid)
}

// TooManyRequests 请求过多
func TooManyRequests(c *gin.Context) {
	Error(c, CodeTooManyRequest)
}
