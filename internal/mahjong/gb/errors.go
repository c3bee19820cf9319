package gb

import "fmt"

// HandError 牌串解析及和牌判定错误
type HandError struct {
	Code    string         // 错误代码
	Message string         // 错误消息
	Cause   error          // 原因错误
	Context map[string]any // 错误上下文
}

func (e *HandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if pos, ok := e.Context["pos"]; ok {
		return fmt.Sprintf("[%s] %s (位置 %v)", e.Code, e.Message, pos)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *HandError) Unwrap() error {
	return e.Cause
}

// Is 按错误代码比较, 便于 errors.Is 匹配预定义错误
func (e *HandError) Is(target error) bool {
	t, ok := target.(*HandError)
	return ok && t.Code == e.Code
}

// NewHandError 创建手牌错误
func NewHandError(code, message string) *HandError {
	return &HandError{
		Code:    code,
		Message: message,
	}
}

// at 复制一份并附加位置, 预定义错误不被修改
func (e *HandError) at(pos int) *HandError {
	return e.with("pos", pos)
}

func (e *HandError) with(key string, value any) *HandError {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &HandError{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: ctx}
}

// 牌串相关错误
var (
	ErrUnknownChar    = NewHandError("UNKNOWN_CHAR", "无法识别的字符")
	ErrMissingSuit    = NewHandError("MISSING_SUIT", "数字后缺少花色")
	ErrInvalidNumber  = NewHandError("INVALID_NUMBER", "数牌数字必须在 1-9 之间")
	ErrInvalidPack    = NewHandError("INVALID_PACK", "无效的副露")
	ErrInvalidEnv     = NewHandError("INVALID_ENV", "无效的场况标记")
	ErrInvalidFlowers = NewHandError("INVALID_FLOWERS", "无效的花牌数")
	ErrTooManyCopies  = NewHandError("TOO_MANY_COPIES", "同一张牌超过 4 张")
	ErrInvalidSize    = NewHandError("INVALID_HAND_SIZE", "手牌数量必须为 13 或 14 张")
	ErrNotWinning     = NewHandError("NOT_HU", "未和牌")
)
