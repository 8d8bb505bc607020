package model

import (
	"strconv"
	"time"
)

// ChatMessage 代表聊天记录中的一条消息。
// ID 由创建时间的毫秒时间戳派生，在同一个用户的记录内唯一且随插入单调递增；
// 列表顺序即会话顺序（最早的在前）。
type ChatMessage struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
	Image  string `json:"image,omitempty"` // data URI，可选
}

// SavedItem 代表用户在生成成功后显式保存的一条内容。
// 创建后不可修改，只能被逐条删除或整体清空。
type SavedItem struct {
	ID      string   `json:"id"`
	Type    ItemType `json:"type"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Date    string   `json:"date"` // ISO-8601
	Tags    []string `json:"tags"`
}

// ItemType 标识保存内容来自哪类工具。
type ItemType string

const (
	ItemTypeScript             ItemType = "Script"
	ItemTypeCaption            ItemType = "Caption"
	ItemTypeBio                ItemType = "Bio"
	ItemTypeDescription        ItemType = "Description"
	ItemTypeLyrics             ItemType = "Lyrics"
	ItemTypeNewsletter         ItemType = "Newsletter"
	ItemTypePodcastScript      ItemType = "PodcastScript"
	ItemTypeProductDescription ItemType = "ProductDescription"
	ItemTypeBlogPost           ItemType = "BlogPost"
	ItemTypeImageText          ItemType = "Image-Text"
)

// HistoryItem 是用户消息的只读投影，用于历史页的浏览、搜索与删除。
// 它不独立持久化，总是在读取时由 ChatMessage 列表重新计算。
type HistoryItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Preview string `json:"preview"`
}

// NewMessageID 生成一个基于当前毫秒时间戳的消息 ID。
// lastID 为当前列表中最大的 ID；当同一毫秒内连续生成时取 lastID+1 保证单调。
func NewMessageID(lastID string) string {
	now := time.Now().UnixMilli()
	if lastID != "" {
		if last, err := strconv.ParseInt(lastID, 10, 64); err == nil && last >= now {
			now = last + 1
		}
	}
	return strconv.FormatInt(now, 10)
}

// MessageTime 从消息 ID 中还原创建时间。ID 不是合法时间戳时返回零值。
func MessageTime(id string) time.Time {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
