package discussion

import (
	"strings"

	"gorm.io/datatypes"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
)

// DiscussionForm 请求体（表单或 JSON），未提供的字段保持 nil
type DiscussionForm struct {
	Title       *string  `form:"title" json:"title"`
	Description *string  `form:"description" json:"description"`
	Category    *string  `form:"category" json:"category"`
	Tags        []string `form:"tags" json:"tags"`
}

// normalizeTags 表单中以逗号分隔的单个输入拆分为多个标签
func (f *DiscussionForm) normalizeTags() {
	if len(f.Tags) != 1 {
		return
	}
	parts := strings.Split(f.Tags[0], ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	f.Tags = tags
}

// Draft 创建/更新讨论帖的参数
// 不做任何校验，原样传递；nil 表示调用方未提供
type Draft struct {
	Title       *string
	Description *string
	Author      *uint
	Category    *string
	Tags        []string
}

// GetDiscussionParams 从请求体和当前用户构建参数
// 更新时 author 传 nil，作者不会出现在更新字段中
func GetDiscussionParams(form DiscussionForm, author *uint) Draft {
	return Draft{
		Title:       form.Title,
		Description: form.Description,
		Author:      author,
		Category:    form.Category,
		Tags:        form.Tags,
	}
}

// NewDiscussion 由参数构建待插入的讨论帖
func (d Draft) NewDiscussion() *discussionModel.Discussion {
	m := &discussionModel.Discussion{
		Title:       deref(d.Title),
		Description: deref(d.Description),
		Category:    deref(d.Category),
		Tags:        datatypes.JSONSlice[string](d.Tags),
	}
	if d.Author != nil {
		m.AuthorID = *d.Author
	}
	return m
}

// UpdateFields 需要覆盖的字段，只包含调用方提供的字段
// 作者永远不在其中
func (d Draft) UpdateFields() map[string]any {
	fields := make(map[string]any, 4)
	if d.Title != nil {
		fields[discussionModel.FieldTitle] = *d.Title
	}
	if d.Description != nil {
		fields[discussionModel.FieldDescription] = *d.Description
	}
	if d.Category != nil {
		fields[discussionModel.FieldCategory] = *d.Category
	}
	if d.Tags != nil {
		fields[discussionModel.FieldTags] = datatypes.JSONSlice[string](d.Tags)
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
