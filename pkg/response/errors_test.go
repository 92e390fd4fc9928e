package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBusinessError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		opts     []ErrorOption
		wantCode ResponseCode
		wantMsg  string
	}{
		{
			name:     "默认值",
			wantCode: Fail,
			wantMsg:  "business error",
		},
		{
			name:     "自定义错误码和消息",
			opts:     []ErrorOption{WithErrorCode(Unauthorized), WithErrorMessage("未提供认证令牌")},
			wantCode: Unauthorized,
			wantMsg:  "未提供认证令牌",
		},
		{
			name:     "包装底层错误",
			opts:     []ErrorOption{WithErrorCode(NotFound), WithErrorMessage("not found"), WithError(cause)},
			wantCode: NotFound,
			wantMsg:  "not found: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBusinessError(tt.opts...)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestBusinessErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewBusinessError(WithError(cause))
	assert.True(t, errors.Is(err, cause))
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse(NotFound, "Discussion not found")
	assert.Equal(t, NotFound, resp.Code)
	assert.Equal(t, "Discussion not found", resp.Message)
	assert.Nil(t, resp.Data)

	ok := SuccessResponse([]string{"a"})
	assert.Equal(t, ResponseCode(Success), ok.Code)
	assert.Equal(t, "success", ok.Message)
}

func TestFromError(t *testing.T) {
	wrapped := NewBusinessError(WithErrorCode(InvalidParameter), WithErrorMessage("Invalid discussion ID"))
	resp := FromError(wrapped)
	assert.Equal(t, InvalidParameter, resp.Code)
	assert.Equal(t, "Invalid discussion ID", resp.Message)

	plain := FromError(errors.New("connection refused"))
	assert.Equal(t, Fail, plain.Code)
	assert.Equal(t, "connection refused", plain.Message)
}
