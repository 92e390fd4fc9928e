package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	res "terminal-terrace/discussion-board/pkg/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func ErrorResponse(c *gin.Context, status int, err *res.BusinessError) {
	c.JSON(status, res.ErrorResponse(err.Code, err.Msg))
}
