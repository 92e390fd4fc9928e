package discussion

import (
	"context"

	"go.uber.org/zap"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/observability"
)

// DiscussionService 讨论帖业务逻辑接口
type DiscussionService interface {
	Create(ctx context.Context, draft Draft) (*discussionModel.Discussion, error)
	List(ctx context.Context) ([]discussionModel.Discussion, error)
	// View 读取并记一次浏览
	View(ctx context.Context, id uint) (*discussionModel.Discussion, error)
	Get(ctx context.Context, id uint) (*discussionModel.Discussion, error)
	Update(ctx context.Context, id uint, draft Draft) (*discussionModel.Discussion, error)
	Delete(ctx context.Context, id uint) error
}

// discussionService 实现
type discussionService struct {
	repo    DiscussionRepository
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewDiscussionService 创建 Service 实例
func NewDiscussionService(repo DiscussionRepository, logger *zap.Logger, metrics *observability.Collector) DiscussionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &discussionService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *discussionService) Create(ctx context.Context, draft Draft) (*discussionModel.Discussion, error) {
	discussion := draft.NewDiscussion()
	if err := s.repo.Create(ctx, discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}

func (s *discussionService) List(ctx context.Context) ([]discussionModel.Discussion, error) {
	return s.repo.FindAll(ctx)
}

func (s *discussionService) View(ctx context.Context, id uint) (*discussionModel.Discussion, error) {
	discussion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 页面展示加一后的值；持久化失败不影响本次浏览
	discussion.Views++
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Error saving discussion view count",
			zap.Uint("discussion_id", id),
			zap.Error(err),
		)
		return discussion, nil
	}
	s.metrics.RecordView()
	return discussion, nil
}

func (s *discussionService) Get(ctx context.Context, id uint) (*discussionModel.Discussion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *discussionService) Update(ctx context.Context, id uint, draft Draft) (*discussionModel.Discussion, error) {
	return s.repo.UpdateByID(ctx, id, draft.UpdateFields())
}

func (s *discussionService) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}
