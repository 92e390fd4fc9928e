package service

import (
	"context"
	"time"

	"terminal-terrace/discussion-board/pkg/response"
)

// Pinger 可探活的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus 健康检查结果
type HealthStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

type HealthService struct {
	pinger  Pinger
	backend string
	timeout time.Duration
}

func NewHealthService(pinger Pinger, backend string) *HealthService {
	return &HealthService{
		pinger:  pinger,
		backend: backend,
		timeout: 2 * time.Second,
	}
}

// Check 探测存储是否可用
func (s *HealthService) Check(ctx context.Context) (*HealthStatus, *response.BusinessError) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		if err := s.pinger.Ping(ctx); err != nil {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("storage unavailable"),
				response.WithError(err),
			)
		}
	}
	return &HealthStatus{Status: "ok", Backend: s.backend}, nil
}
