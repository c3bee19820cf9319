package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	cause := fmt.Errorf("zlib: invalid header")
	err := ErrRecordDecode.Wrap(cause)

	assert.Equal(t, CodeRecordDecode, err.Code)
	assert.True(t, Is(err, ErrRecordDecode))
	assert.False(t, Is(err, ErrRecordReplay))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, ErrRecordDecode.Err, "预定义错误不应被修改")
}

func TestGetCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("analyze 123: %w", ErrNotHu.Wrapf("hand %s", "123m"))

	assert.Equal(t, CodeNotHu, GetCode(wrapped))
	assert.Equal(t, "未和牌", GetMessage(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, CodeServerError, GetCode(plain))
	assert.Equal(t, "服务器内部错误", GetMessage(plain))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[20001] 牌串格式错误", ErrInvalidHand.Error())
	assert.Equal(t, "[22003] 缺少历史记录 Cookie: TZI_HISTORY_COOKIE", ErrCookieMissing.Wrapf("TZI_HISTORY_COOKIE").Error())
}
