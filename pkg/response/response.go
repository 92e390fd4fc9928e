package response

import "errors"

type ResponseCode int

// 统一业务代码
const (
	Success ResponseCode = 100
)

// Response JSON 响应信封，HTML 以外的客户端（Accept: application/json）使用
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}

// FromError 将任意错误转换为响应信封
// 非 BusinessError 一律视为 Fail
func FromError(err error) Response {
	var be *BusinessError
	if errors.As(err, &be) {
		return ErrorResponse(be.Code, be.Msg)
	}
	return ErrorResponse(Fail, err.Error())
}
