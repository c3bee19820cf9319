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

// Wrapf 包装一条格式化的原因
func (e *AppError) Wrapf(format string, args ...any) *AppError {
	return e.Wrap(fmt.Errorf(format, args...))
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
	return "服务器内部错误"
}

// ============== 错误码定义 ==============

const (
	CodeSuccess = 0

	// 请求参数 10000-10999
	CodeInvalidParams = 10001

	// 手牌相关 20000-20999
	CodeInvalidHand = 20001
	CodeNotHu       = 20002

	// 牌谱相关 21000-21999
	CodeRecordDecode   = 21001
	CodeRecordReplay   = 21002
	CodeRecordNoWinner = 21003
	CodeRecordNotFound = 21004

	// 远端接口 22000-22999
	CodeRemoteRequest = 22001
	CodeRemoteStatus  = 22002
	CodeCookieMissing = 22003

	// 系统错误 50000-50999
	CodeServerError   = 50001
	CodeCacheError    = 50002
	CodeTooManyReqest = 50003
)

// ============== 预定义错误 ==============

var (
	ErrInvalidParams = NewError(CodeInvalidParams, "参数校验失败")
)

// 手牌相关
var (
	ErrInvalidHand = NewError(CodeInvalidHand, "牌串格式错误")
	ErrNotHu       = NewError(CodeNotHu, "未和牌")
)

// 牌谱相关
var (
	ErrRecordDecode   = NewError(CodeRecordDecode, "牌谱解码失败")
	ErrRecordReplay   = NewError(CodeRecordReplay, "牌谱回放失败")
	ErrRecordNoWinner = NewError(CodeRecordNoWinner, "本局无人和牌")
	ErrRecordNotFound = NewError(CodeRecordNotFound, "牌谱不存在")
)

// 远端接口
var (
	ErrRemoteRequest = NewError(CodeRemoteRequest, "请求远端接口失败")
	ErrRemoteStatus  = NewError(CodeRemoteStatus, "远端接口返回异常状态")
	ErrCookieMissing = NewError(CodeCookieMissing, "缺少历史记录 Cookie")
)

// 系统相关
var (
	ErrServerError    = NewError(CodeServerError, "服务器内部错误")
	ErrCacheError     = NewError(CodeCacheError, "缓存错误")
	ErrTooManyRequest = NewError(CodeTooManyReqest, "请求过于频繁，请稍后再试")
)
