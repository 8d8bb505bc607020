package service

import (
	"context"
	"os"
	"testing"
	"time"

	"fasto-go/internal/model"
	"fasto-go/internal/repository"
	"fasto-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

func newContentServiceForTest() (ContentService, repository.ContentStore) {
	store := repository.NewMemoryContentStore()
	return NewContentService(store), store
}

func TestSaveItemAssignsIDDateAndTags(t *testing.T) {
	svc, _ := newContentServiceForTest()
	ctx := context.Background()

	item, err := svc.SaveItem(ctx, 1, model.SavedItem{
		Type:    model.ItemTypeScript,
		Title:   "My Script",
		Content: "INTRO: ...",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)

	_, err = time.Parse(time.RFC3339, item.Date)
	assert.NoError(t, err, "date should be RFC3339")
}

func TestSaveItemPrependsNewest(t *testing.T) {
	svc, _ := newContentServiceForTest()
	ctx := context.Background()

	_, err := svc.SaveItem(ctx, 1, model.SavedItem{Type: model.ItemTypeCaption, Title: "first", Content: "a"})
	require.NoError(t, err)
	_, err = svc.SaveItem(ctx, 1, model.SavedItem{Type: model.ItemTypeCaption, Title: "second", Content: "b"})
	require.NoError(t, err)

	items, err := svc.LoadSaved(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, "first", items[1].Title)
}

func TestDeleteSavedIsIdempotent(t *testing.T) {
	svc, _ := newContentServiceForTest()
	ctx := context.Background()

	saved, err := svc.SaveItem(ctx, 1, model.SavedItem{Type: model.ItemTypeBio, Title: "bio", Content: "c"})
	require.NoError(t, err)

	// 删除不存在的 id 是无错误的空操作
	require.NoError(t, svc.DeleteSaved(ctx, 1, "does-not-exist"))
	items, err := svc.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.DeleteSaved(ctx, 1, saved.ID))
	items, err = svc.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	// 再删一次依然成功
	require.NoError(t, svc.DeleteSaved(ctx, 1, saved.ID))
}

func TestClearSaved(t *testing.T) {
	svc, _ := newContentServiceForTest()
	ctx := context.Background()

	_, err := svc.SaveItem(ctx, 1, model.SavedItem{Type: model.ItemTypeLyrics, Title: "song", Content: "la la"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearSaved(ctx, 1))
	items, err := svc.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSavedCollectionsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newContentServiceForTest()
	ctx := context.Background()

	_, err := svc.SaveItem(ctx, 1, model.SavedItem{Type: model.ItemTypeScript, Title: "mine", Content: "x"})
	require.NoError(t, err)

	items, err := svc.LoadSaved(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadHistoryProjectsUserMessagesNewestFirst(t *testing.T) {
	svc, store := newContentServiceForTest()
	ctx := context.Background()

	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{
		{ID: "1700000000000", Text: "first question", IsUser: true},
		{ID: "1700000000001", Text: "first answer", IsUser: false},
		{ID: "1700000000002", Text: "second question", IsUser: true},
	}))

	history, err := svc.LoadHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// 只有用户消息进入历史，且新的在前
	assert.Equal(t, "1700000000002", history[0].ID)
	assert.Equal(t, "second question", history[0].Preview)
	assert.Equal(t, "1700000000000", history[1].ID)

	// 日期由 ID 的毫秒时间戳还原
	expected := time.UnixMilli(1700000000002).UTC().Format(time.RFC3339)
	assert.Equal(t, expected, history[0].Date)
}

func TestLoadHistoryTruncatesLongTitles(t *testing.T) {
	svc, store := newContentServiceForTest()
	ctx := context.Background()

	long := "this is a rather long question that keeps going on and on"
	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{
		{ID: "1700000000000", Text: long, IsUser: true},
	}))

	history, err := svc.LoadHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)

	assert.Equal(t, string([]rune(long)[:30])+"…", history[0].Title)
	assert.Equal(t, long, history[0].Preview, "preview keeps the full text")
}

func TestDeleteHistoryEntryRemovesUnderlyingMessage(t *testing.T) {
	svc, store := newContentServiceForTest()
	ctx := context.Background()

	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{
		{ID: "100", Text: "keep me", IsUser: true},
		{ID: "101", Text: "answer", IsUser: false},
		{ID: "102", Text: "delete me", IsUser: true},
	}))

	require.NoError(t, svc.DeleteHistoryEntry(ctx, 1, "102"))

	messages, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "100", messages[0].ID)
	assert.Equal(t, "101", messages[1].ID)

	// 不存在的 id 是空操作
	require.NoError(t, svc.DeleteHistoryEntry(ctx, 1, "999"))
}

func TestClearHistory(t *testing.T) {
	svc, store := newContentServiceForTest()
	ctx := context.Background()

	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{
		{ID: "100", Text: "hello", IsUser: true},
	}))

	require.NoError(t, svc.ClearHistory(ctx, 1))
	history, err := svc.LoadHistory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSearchSavedMatchesTitleContentAndTags(t *testing.T) {
	svc, _ := newContentServiceForTest()

	items := []model.SavedItem{
		{ID: "1", Title: "Morning Routine Script", Content: "wake up early", Tags: []string{"lifestyle"}},
		{ID: "2", Title: "Product Launch", Content: "introducing our new GADGET", Tags: []string{"marketing"}},
		{ID: "3", Title: "Untitled", Content: "nothing here", Tags: []string{"LifeStyle", "vlog"}},
	}

	// 标题匹配，大小写不敏感
	assert.Len(t, svc.SearchSaved(items, "morning"), 1)
	// 内容匹配
	got := svc.SearchSaved(items, "gadget")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	// 标签匹配
	assert.Len(t, svc.SearchSaved(items, "lifestyle"), 2)
	// 空搜索词返回全部
	assert.Len(t, svc.SearchSaved(items, ""), 3)
	// 无匹配
	assert.Empty(t, svc.SearchSaved(items, "zzz"))
}

// corruptStore 模拟所有读取都因数据损坏而失败的存储。
type corruptStore struct {
	repository.ContentStore
}

func (s *corruptStore) LoadSaved(ctx context.Context, userID uint) ([]model.SavedItem, error) {
	return nil, assert.AnError
}

func (s *corruptStore) LoadMessages(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	return nil, assert.AnError
}

// 读取失败时返回错误和空集合（不是 nil），调用方据此提示用户并照常渲染。
func TestLoadSavedDegradesToEmptyOnStoreFailure(t *testing.T) {
	svc := NewContentService(&corruptStore{})

	items, err := svc.LoadSaved(context.Background(), 1)
	require.Error(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadHistoryDegradesToEmptyOnStoreFailure(t *testing.T) {
	svc := NewContentService(&corruptStore{})

	history, err := svc.LoadHistory(context.Background(), 1)
	require.Error(t, err)
	require.NotNil(t, history)
	assert.Empty(t, history)
}

func TestSearchHistoryMatchesTitleAndPreview(t *testing.T) {
	svc, _ := newContentServiceForTest()

	items := []model.HistoryItem{
		{ID: "1", Title: "how do I bake bread", Preview: "how do I bake bread"},
		{ID: "2", Title: "tell me about Go", Preview: "tell me about Go concurrency"},
	}

	assert.Len(t, svc.SearchHistory(items, "BREAD"), 1)
	assert.Len(t, svc.SearchHistory(items, "concurrency"), 1)
	assert.Len(t, svc.SearchHistory(items, ""), 2)
}
