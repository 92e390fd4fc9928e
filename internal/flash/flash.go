// Package flash 一次性用户提示（flash message）
// 消息按浏览器会话存储，在下一次渲染页面时取出并删除
package flash

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Category 提示级别
type Category string

const (
	Success Category = "success"
	Error   Category = "error"
)

// Message 一条提示
type Message struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Store flash 存储
type Store interface {
	Push(ctx context.Context, sessionID string, msg Message) error
	// Pop 取出并清空会话内的全部提示
	Pop(ctx context.Context, sessionID string) ([]Message, error)
}

// sessionKey gin 上下文中保存会话ID的键
const sessionKey = "flash_session_id"

// Flasher 在请求与存储之间传递提示
type Flasher struct {
	store      Store
	cookieName string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewFlasher 创建 Flasher
func NewFlasher(store Store, cookieName string, ttl time.Duration, logger *zap.Logger) *Flasher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flasher{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		logger:     logger,
	}
}

// Middleware 确保每个请求都带有 flash 会话 cookie
func (f *Flasher) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(f.cookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(f.cookieName, id, 0, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// Add 记录一条提示，失败只记日志
func (f *Flasher) Add(c *gin.Context, category Category, text string) {
	id := c.GetString(sessionKey)
	if id == "" {
		f.logger.Warn("flash session missing, message dropped",
			zap.String("category", string(category)),
			zap.String("text", text),
		)
		return
	}

	if err := f.store.Push(c.Request.Context(), id, Message{Category: category, Text: text}); err != nil {
		f.logger.Error("Error saving flash message", zap.Error(err))
	}
}

// Pop 取出当前会话的全部提示
func (f *Flasher) Pop(c *gin.Context) []Message {
	id := c.GetString(sessionKey)
	if id == "" {
		return nil
	}

	msgs, err := f.store.Pop(c.Request.Context(), id)
	if err != nil {
		f.logger.Error("Error loading flash messages", zap.Error(err))
		return nil
	}
	return msgs
}
