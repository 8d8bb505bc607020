package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fasto-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// ContentStore 定义了每个用户两个内容集合的持久化操作：
// 保存内容（saved）与聊天消息（chat_messages）。
// 每个集合在存储中是一个完整序列化的 JSON 值；所有写入都是
// 整个集合的读取-修改-写回，不存在局部更新。两个客户端对同一
// 用户并发写入时，后写者覆盖先写者（last write wins），不做合并。
type ContentStore interface {
	LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error)
	StoreSaved(ctx context.Context, userID uint, items []model.SavedItem) error
	ClearSaved(ctx context.Context, userID uint) error

	LoadMessages(ctx context.Context, userID uint) ([]model.ChatMessage, error)
	StoreMessages(ctx context.Context, userID uint, messages []model.ChatMessage) error
	ClearMessages(ctx context.Context, userID uint) error
}

type redisContentStore struct {
	redisClient *redis.Client
}

// NewContentStore 创建一个以 Redis 为后端的 ContentStore。
// 集合与账号同生命周期，键不设置过期时间。
func NewContentStore(redisClient *redis.Client) ContentStore {
	return &redisContentStore{redisClient: redisClient}
}

func savedKey(userID uint) string {
	return fmt.Sprintf("user:%d:saved", userID)
}

func messagesKey(userID uint) string {
	return fmt.Sprintf("user:%d:chat_messages", userID)
}

// LoadSaved 读取用户的保存内容集合。键不存在时返回空集合。
func (s *redisContentStore) LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error) {
	jsonData, err := s.redisClient.Get(ctx, savedKey(userID)).Result()
	if err == redis.Nil {
		return []model.SavedItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved items: %w", err)
	}
	var items []model.SavedItem
	if err := json.Unmarshal([]byte(jsonData), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved items: %w", err)
	}
	return items, nil
}

// StoreSaved 将整个保存内容集合写回存储。
func (s *redisContentStore) StoreSaved(ctx context.Context, userID uint, items []model.SavedItem) error {
	jsonData, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal saved items: %w", err)
	}
	if err := s.redisClient.Set(ctx, savedKey(userID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set saved items: %w", err)
	}
	return nil
}

// ClearSaved 直接删除存储键。
func (s *redisContentStore) ClearSaved(ctx context.Context, userID uint) error {
	if err := s.redisClient.Del(ctx, savedKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear saved items: %w", err)
	}
	return nil
}

// LoadMessages 读取用户的完整聊天消息列表（最早的在前）。
func (s *redisContentStore) LoadMessages(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	jsonData, err := s.redisClient.Get(ctx, messagesKey(userID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat messages: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat messages: %w", err)
	}
	return messages, nil
}

// StoreMessages 将整个聊天消息列表写回存储。
func (s *redisContentStore) StoreMessages(ctx context.Context, userID uint, messages []model.ChatMessage) error {
	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat messages: %w", err)
	}
	if err := s.redisClient.Set(ctx, messagesKey(userID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set chat messages: %w", err)
	}
	return nil
}

// ClearMessages 直接删除存储键。
func (s *redisContentStore) ClearMessages(ctx context.Context, userID uint) error {
	if err := s.redisClient.Del(ctx, messagesKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
