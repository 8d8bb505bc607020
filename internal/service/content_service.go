// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"strings"
	"time"

	"fasto-go/internal/model"
	"fasto-go/internal/repository"
	"fasto-go/pkg/log"
)

// ContentService 定义了保存内容与聊天历史的操作接口。
// 所有读取在底层数据缺失或损坏时都退化为空集合，绝不让
// 解析错误穿透到接口层之外。
type ContentService interface {
	// LoadSaved 返回用户的保存内容，新的在前。
	// 读取或解析失败时返回空集合和错误，由调用方提示用户。
	LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error)
	// SaveItem 为内容分配时间戳 ID 与日期，并前插到集合头部（不去重）。
	SaveItem(ctx context.Context, userID uint, item model.SavedItem) (model.SavedItem, error)
	// DeleteSaved 删除第一条匹配 id 的内容；id 不存在时是无错误的空操作。
	DeleteSaved(ctx context.Context, userID uint, id string) error
	// ClearSaved 删除整个保存内容集合。
	ClearSaved(ctx context.Context, userID uint) error

	// LoadHistory 由持久化的聊天消息计算历史投影：仅用户消息，新的在前。
	LoadHistory(ctx context.Context, userID uint) ([]model.HistoryItem, error)
	// DeleteHistoryEntry 删除 id 对应的那一条聊天消息（不是整段会话）。
	DeleteHistoryEntry(ctx context.Context, userID uint, id string) error
	// ClearHistory 删除整个聊天消息集合。
	ClearHistory(ctx context.Context, userID uint) error

	// SearchSaved 对已加载的集合做大小写不敏感的子串过滤（标题、内容、标签）。
	SearchSaved(items []model.SavedItem, term string) []model.SavedItem
	// SearchHistory 对历史投影做大小写不敏感的子串过滤（标题、预览）。
	SearchHistory(items []model.HistoryItem, term string) []model.HistoryItem
}

type contentService struct {
	store repository.ContentStore
}

// NewContentService 创建一个新的 ContentService 实例。
func NewContentService(store repository.ContentStore) ContentService {
	return &contentService{store: store}
}

func (s *contentService) LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error) {
	items, err := s.store.LoadSaved(ctx, userID)
	if err != nil {
		log.Errorf("读取保存内容失败: userID=%d, err=%v", userID, err)
		return []model.SavedItem{}, err
	}
	return items, nil
}

func (s *contentService) SaveItem(ctx context.Context, userID uint, item model.SavedItem) (model.SavedItem, error) {
	item.ID = model.NewMessageID("")
	item.Date = time.Now().UTC().Format(time.RFC3339)
	if item.Tags == nil {
		item.Tags = []string{}
	}

	items, err := s.store.LoadSaved(ctx, userID)
	if err != nil {
		// 已有数据无法读取时退化为空集合继续保存，与前端本地存储的行为一致
		log.Warnf("保存前读取集合失败，按空集合处理: userID=%d, err=%v", userID, err)
		items = []model.SavedItem{}
	}

	// 新的在前
	items = append([]model.SavedItem{item}, items...)
	if err := s.store.StoreSaved(ctx, userID, items); err != nil {
		return item, err
	}
	return item, nil
}

func (s *contentService) DeleteSaved(ctx context.Context, userID uint, id string) error {
	items, err := s.store.LoadSaved(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]model.SavedItem, 0, len(items))
	removed := false
	for _, item := range items {
		if !removed && item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil
	}
	return s.store.StoreSaved(ctx, userID, kept)
}

func (s *contentService) ClearSaved(ctx context.Context, userID uint) error {
	return s.store.ClearSaved(ctx, userID)
}

func (s *contentService) LoadHistory(ctx context.Context, userID uint) ([]model.HistoryItem, error) {
	messages, err := s.store.LoadMessages(ctx, userID)
	if err != nil {
		log.Errorf("读取聊天历史失败: userID=%d, err=%v", userID, err)
		return []model.HistoryItem{}, err
	}

	history := make([]model.HistoryItem, 0, len(messages))
	for _, msg := range messages {
		if !msg.IsUser {
			continue
		}
		history = append(history, model.HistoryItem{
			ID:      msg.ID,
			Title:   truncateTitle(msg.Text, 30),
			Date:    historyDate(msg.ID),
			Preview: msg.Text,
		})
	}

	// 展示时新的在前
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

func (s *contentService) DeleteHistoryEntry(ctx context.Context, userID uint, id string) error {
	messages, err := s.store.LoadMessages(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]model.ChatMessage, 0, len(messages))
	removed := false
	for _, msg := range messages {
		if !removed && msg.ID == id {
			removed = true
			continue
		}
		kept = append(kept, msg)
	}
	if !removed {
		return nil
	}
	return s.store.StoreMessages(ctx, userID, kept)
}

func (s *contentService) ClearHistory(ctx context.Context, userID uint) error {
	return s.store.ClearMessages(ctx, userID)
}

func (s *contentService) SearchSaved(items []model.SavedItem, term string) []model.SavedItem {
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	matched := make([]model.SavedItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), term) ||
			strings.Contains(strings.ToLower(item.Content), term) ||
			tagsMatch(item.Tags, term) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (s *contentService) SearchHistory(items []model.HistoryItem, term string) []model.HistoryItem {
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	matched := make([]model.HistoryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), term) ||
			strings.Contains(strings.ToLower(item.Preview), term) {
			matched = append(matched, item)
		}
	}
	return matched
}

func tagsMatch(tags []string, lowerTerm string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

// truncateTitle 按字符截断文本，超出部分以省略号收尾。
func truncateTitle(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

// historyDate 从消息 ID 还原创建日期；ID 异常时返回空字符串。
func historyDate(id string) string {
	t := model.MessageTime(id)
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
