package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sudooom.gbfan/internal/errors"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 错误码常量 (使用 internal/errors 的定义)
const (
	CodeSuccess       = apperrors.CodeSuccess
	CodeInvalidParams = apperrors.CodeInvalidParams
	CodeServerError   = apperrors.CodeServerError
)

var codeMessages = map[int]string{
	CodeSuccess:       "success",
	CodeInvalidParams: "参数校验失败",
	CodeServerError:   "服务器内部错误",
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
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithMsg 自定义错误消息
func ErrorWithMsg(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithData 错误码与数据一并返回, 如未和牌时仍带上算番结果
func ErrorWithData(c *gin.Context, err *apperrors.AppError, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    err.Code,
		Message: err.Message,
		Data:    data,
	})
}

// ErrorFromAppError 从 AppError 生成错误响应
func ErrorFromAppError(c *gin.Context, err error) {
	c.JSON(http.StatusOK, Response{
		Code:    apperrors.GetCode(err),
		Message: apperrors.GetMessage(err),
		Data:    nil,
	})
}

// TooManyRequests 请求过多
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Response{
		Code:    apperrors.CodeTooManyReqest,
		Message: apperrors.ErrTooManyRequest.Message,
		Data:    nil,
	})
}
