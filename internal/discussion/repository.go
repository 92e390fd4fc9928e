package discussion

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
)

// DiscussionRepository 讨论帖数据访问接口
type DiscussionRepository interface {
	// Create 校验并插入，成功后写回 ID 与时间戳
	Create(ctx context.Context, discussion *discussionModel.Discussion) error
	// FindAll 全部讨论帖，带作者
	FindAll(ctx context.Context) ([]discussionModel.Discussion, error)
	// FindByID 单个讨论帖，带作者与评论；不存在返回 ErrDiscussionNotFound
	FindByID(ctx context.Context, id uint) (*discussionModel.Discussion, error)
	// UpdateByID 覆盖给定字段并返回更新后的讨论帖
	UpdateByID(ctx context.Context, id uint, fields map[string]any) (*discussionModel.Discussion, error)
	// IncrementViews 浏览量原子加一
	IncrementViews(ctx context.Context, id uint) error
	// DeleteByID 删除；不存在时什么都不做
	DeleteByID(ctx context.Context, id uint) error
}

// discussionRepository PostgreSQL 实现
type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository 创建 Repository 实例
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *discussionModel.Discussion) error {
	return storeError(r.db.WithContext(ctx).Create(discussion).Error, "create discussion")
}

func (r *discussionRepository) FindAll(ctx context.Context) ([]discussionModel.Discussion, error) {
	var discussions []discussionModel.Discussion
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&discussions).Error
	if err != nil {
		return nil, storeError(err, "list discussions")
	}
	return discussions, nil
}

func (r *discussionRepository) FindByID(ctx context.Context, id uint) (*discussionModel.Discussion, error) {
	return findByID(r.db.WithContext(ctx), id)
}

func (r *discussionRepository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (*discussionModel.Discussion, error) {
	var updated *discussionModel.Discussion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&discussionModel.Discussion{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrDiscussionNotFound
			}
		}

		d, err := findByID(tx, id)
		if err != nil {
			return err
		}
		// 覆盖后的记录同样需要满足校验
		if err := d.Validate(); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, storeError(err, "update discussion %d", id)
	}
	return updated, nil
}

func (r *discussionRepository) IncrementViews(ctx context.Context, id uint) error {
	// UpdateColumn 不会刷新 updated_at
	res := r.db.WithContext(ctx).
		Model(&discussionModel.Discussion{}).
		Where("id = ?", id).
		UpdateColumn(discussionModel.FieldViews, gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return storeError(res.Error, "increment views of discussion %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrDiscussionNotFound
	}
	return nil
}

func (r *discussionRepository) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&discussionModel.Discussion{}, id).Error
	return storeError(err, "delete discussion %d", id)
}

func findByID(db *gorm.DB, id uint) (*discussionModel.Discussion, error) {
	var discussion discussionModel.Discussion
	err := db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&discussion, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDiscussionNotFound
	}
	if err != nil {
		return nil, storeError(err, "find discussion %d", id)
	}
	return &discussion, nil
}

// storeError 为驱动错误附加操作信息，业务错误原样返回
func storeError(err error, format string, args ...any) error {
	if err == nil ||
		errors.Is(err, ErrDiscussionNotFound) ||
		errors.Is(err, discussionModel.ErrInvalidDiscussion) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
