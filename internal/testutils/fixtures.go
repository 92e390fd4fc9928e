package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/model/user"
)

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()

	testUser := &user.User{
		Username:  fmt.Sprintf("test_user_%s", uniqueID),
		Email:     fmt.Sprintf("test_%s@example.com", uniqueID),
		Role:      "student",
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// CreateTestDiscussion creates a test discussion authored by authorID
func CreateTestDiscussion(db *gorm.DB, authorID uint, opts ...DiscussionOption) *discussion.Discussion {
	uniqueID := uuid.New().String()

	d := &discussion.Discussion{
		Title:       fmt.Sprintf("Test Discussion %s", uniqueID),
		Description: "Test discussion description",
		Category:    "general",
		Tags:        []string{"test"},
		AuthorID:    authorID,
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := db.Create(d).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test discussion: %v", err))
	}

	return d
}

// DiscussionOption configures test discussion
type DiscussionOption func(*discussion.Discussion)

// WithTitle sets the discussion title
func WithTitle(title string) DiscussionOption {
	return func(d *discussion.Discussion) {
		d.Title = title
	}
}

// WithViews sets the initial view counter
func WithViews(views uint) DiscussionOption {
	return func(d *discussion.Discussion) {
		d.Views = views
	}
}

// CreateTestComment creates a comment under a discussion
func CreateTestComment(db *gorm.DB, discussionID, authorID uint, content string) *discussion.Comment {
	c := &discussion.Comment{
		DiscussionID: discussionID,
		AuthorID:     authorID,
		Content:      content,
	}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test comment: %v", err))
	}
	return c
}
