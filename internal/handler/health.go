package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/discussion-board/internal/dto"
	"terminal-terrace/discussion-board/internal/service"
)

type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// HandleHealth GET /healthz
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	result, err := h.healthService.Check(c.Request.Context())
	if err != nil {
		dto.ErrorResponse(c, http.StatusServiceUnavailable, err)
		return
	}
	dto.SuccessResponse(c, result)
}
