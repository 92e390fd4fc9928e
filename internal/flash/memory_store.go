package flash

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemoryStore 进程内存储，单实例部署与测试使用
type MemoryStore struct {
	m *xsync.MapOf[string, []Message]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: xsync.NewMapOf[string, []Message]()}
}

func (s *MemoryStore) Push(_ context.Context, sessionID string, msg Message) error {
	s.m.Compute(sessionID, func(old []Message, _ bool) ([]Message, bool) {
		return append(old, msg), false
	})
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) ([]Message, error) {
	msgs, _ := s.m.LoadAndDelete(sessionID)
	return msgs, nil
}
