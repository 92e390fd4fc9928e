package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
)

func strPtr(s string) *string { return &s }

func TestGetDiscussionParams(t *testing.T) {
	author := uint(1)
	form := DiscussionForm{
		Title:    strPtr("Hello"),
		Category: strPtr("general"),
		Tags:     []string{"x"},
	}

	draft := GetDiscussionParams(form, &author)

	assert.Equal(t, "Hello", *draft.Title)
	assert.Nil(t, draft.Description, "absent fields stay absent")
	assert.Equal(t, "general", *draft.Category)
	assert.Equal(t, []string{"x"}, draft.Tags)
	assert.Equal(t, uint(1), *draft.Author)
}

func TestDraft_UpdateFields(t *testing.T) {
	author := uint(9)

	tests := []struct {
		name  string
		draft Draft
		want  map[string]any
	}{
		{
			name:  "empty draft",
			draft: Draft{},
			want:  map[string]any{},
		},
		{
			name:  "only supplied fields",
			draft: Draft{Title: strPtr("New"), Tags: []string{}},
			want: map[string]any{
				discussionModel.FieldTitle: "New",
				discussionModel.FieldTags:  datatypes.JSONSlice[string]{},
			},
		},
		{
			name:  "author is never updated",
			draft: Draft{Description: strPtr(""), Author: &author},
			want:  map[string]any{discussionModel.FieldDescription: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.UpdateFields())
		})
	}
}

func TestDraft_NewDiscussion(t *testing.T) {
	author := uint(3)
	d := Draft{Title: strPtr("Hello"), Author: &author, Tags: []string{"a", "b"}}.NewDiscussion()

	assert.Equal(t, "Hello", d.Title)
	assert.Equal(t, "", d.Description)
	assert.Equal(t, uint(3), d.AuthorID)
	assert.Equal(t, uint(0), d.Views)
	assert.Equal(t, []string{"a", "b"}, []string(d.Tags))

	anonymous := Draft{Title: strPtr("Hello")}.NewDiscussion()
	assert.Equal(t, uint(0), anonymous.AuthorID)
}

func TestDiscussionForm_NormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "absent", in: nil, want: nil},
		{name: "comma separated", in: []string{" go ,web"}, want: []string{"go", "web"}},
		{name: "blank clears", in: []string{""}, want: []string{}},
		{name: "repeated fields kept", in: []string{"a", "b,c"}, want: []string{"a", "b,c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := DiscussionForm{Tags: tt.in}
			form.normalizeTags()
			assert.Equal(t, tt.want, form.Tags)
		})
	}
}
