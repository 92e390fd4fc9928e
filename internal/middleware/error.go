package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terminal-terrace/discussion-board/pkg/response"
)

// ErrorTemplate 通用错误页模板名
const ErrorTemplate = "error"

// ErrorMeta 随错误一起转交的附加信息
// Redirect 仅作为错误页上的建议跳转，不保证执行
type ErrorMeta struct {
	Redirect string
}

// StatusFunc 将错误映射为 HTTP 状态码
type StatusFunc func(err error) int

// ErrorHandler 通用错误处理
// 处理器通过 c.Error 转交的错误在这里统一输出
func ErrorHandler(logger *zap.Logger, status StatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		code := http.StatusInternalServerError
		if status != nil {
			code = status(ginErr.Err)
		}

		var redirect string
		if meta, ok := ginErr.Meta.(ErrorMeta); ok {
			redirect = meta.Redirect
		}

		logger.Warn("request failed",
			zap.Error(ginErr.Err),
			zap.Int("status", code),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(ContextRequestID)),
		)

		message := ginErr.Err.Error()
		if code >= http.StatusInternalServerError && gin.Mode() == gin.ReleaseMode {
			message = http.StatusText(code)
		}

		switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
		case gin.MIMEJSON:
			// 已是业务错误的保留其错误码，其余按状态码归类
			var be *response.BusinessError
			if !errors.As(ginErr.Err, &be) {
				be = response.NewBusinessError(
					response.WithErrorCode(responseCode(code)),
					response.WithErrorMessage(message),
					response.WithError(ginErr.Err),
				)
			}
			body := response.FromError(be)
			body.Data = gin.H{"redirect": redirect}
			c.JSON(code, body)
		default:
			c.HTML(code, ErrorTemplate, gin.H{
				"page":     "error",
				"title":    http.StatusText(code),
				"status":   code,
				"message":  message,
				"redirect": redirect,
			})
		}
	}
}

func responseCode(status int) response.ResponseCode {
	switch status {
	case http.StatusNotFound:
		return response.NotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return response.InvalidParameter
	case http.StatusUnauthorized:
		return response.Unauthorized
	default:
		return response.Fail
	}
}
