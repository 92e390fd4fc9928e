// Package discussion 讨论帖相关模型
package discussion

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"terminal-terrace/discussion-board/internal/model/user"
)

// ErrInvalidDiscussion 讨论帖字段校验失败
var ErrInvalidDiscussion = errors.New("invalid discussion")

// 可被更新的字段，列名与 bson 字段名一致
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldViews       = "views"
)

// Discussion 讨论帖
// 作者在创建时写入，之后不再修改；评论由评论服务维护，这里只读
type Discussion struct {
	ID          uint                        `gorm:"primaryKey" json:"id" bson:"_id"`
	Title       string                      `gorm:"type:varchar(255);not null" json:"title" bson:"title" validate:"required,max=255"`
	Description string                      `gorm:"type:text" json:"description" bson:"description" validate:"max=10000"`
	Category    string                      `gorm:"type:varchar(64);index" json:"category" bson:"category" validate:"max=64"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags" bson:"tags" validate:"max=20,dive,max=50"`
	Views       uint                        `gorm:"column:views;not null;default:0" json:"views" bson:"views"`
	AuthorID    uint                        `gorm:"column:author_id;not null;index" json:"author_id" bson:"author_id"`
	CreatedAt   time.Time                   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at" bson:"updated_at"`

	// 关联（预加载）
	Author   *user.User `gorm:"foreignKey:AuthorID" json:"author,omitempty" bson:"-"`
	Comments []Comment  `gorm:"foreignKey:DiscussionID" json:"comments,omitempty" bson:"-"`
}

// TableName 指定表名
func (Discussion) TableName() string {
	return "discussions"
}

// Validate 校验字段，两种存储在写入前都会调用
func (d *Discussion) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDiscussion, describe(err))
	}
	return nil
}

// BeforeCreate GORM钩子：创建前校验
func (d *Discussion) BeforeCreate(tx *gorm.DB) error {
	return d.Validate()
}

// AuthorName 模板展示用，作者不存在时返回占位名
func (d *Discussion) AuthorName() string {
	if d.Author == nil || d.Author.Username == "" {
		return "Unknown User"
	}
	return d.Author.Username
}

// Comment 讨论帖下的评论（只读）
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id" bson:"_id"`
	DiscussionID uint      `gorm:"not null;index" json:"discussion_id" bson:"discussion_id"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id" bson:"author_id"`
	Content      string    `gorm:"type:text;not null" json:"content" bson:"content"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
