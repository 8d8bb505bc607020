package repository

import (
	"context"
	"sync"

	"fasto-go/internal/model"
)

// memoryContentStore 是 ContentStore 的内存实现，语义与 Redis 实现一致，
// 用于测试以及无外部依赖的本地运行。
type memoryContentStore struct {
	mu       sync.Mutex
	saved    map[uint][]model.SavedItem
	messages map[uint][]model.ChatMessage
}

// NewMemoryContentStore 创建一个内存 ContentStore。
func NewMemoryContentStore() ContentStore {
	return &memoryContentStore{
		saved:    make(map[uint][]model.SavedItem),
		messages: make(map[uint][]model.ChatMessage),
	}
}

func (s *memoryContentStore) LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.saved[userID]
	if !ok {
		return []model.SavedItem{}, nil
	}
	out := make([]model.SavedItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *memoryContentStore) StoreSaved(ctx context.Context, userID uint, items []model.SavedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.SavedItem, len(items))
	copy(stored, items)
	s.saved[userID] = stored
	return nil
}

func (s *memoryContentStore) ClearSaved(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, userID)
	return nil
}

func (s *memoryContentStore) LoadMessages(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, ok := s.messages[userID]
	if !ok {
		return []model.ChatMessage{}, nil
	}
	out := make([]model.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

func (s *memoryContentStore) StoreMessages(ctx context.Context, userID uint, messages []model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.ChatMessage, len(messages))
	copy(stored, messages)
	s.messages[userID] = stored
	return nil
}

func (s *memoryContentStore) ClearMessages(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, userID)
	return nil
}
