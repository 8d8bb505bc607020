package repository

import (
	"context"
	"testing"

	"fasto-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	items := []model.SavedItem{{ID: "1", Title: "a", Content: "b", Tags: []string{"t"}}}
	require.NoError(t, store.StoreSaved(ctx, 1, items))

	got, err := store.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// 未写入过的用户返回空集合而不是 nil 错误
	empty, err := store.LoadSaved(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	original := []model.ChatMessage{{ID: "1", Text: "hello", IsUser: true}}
	require.NoError(t, store.StoreMessages(ctx, 1, original))

	// 修改写入后的切片不影响存储内容
	original[0].Text = "mutated"
	got, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got[0].Text)

	// 修改读取结果同样不影响存储内容
	got[0].Text = "mutated again"
	again, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", again[0].Text)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	require.NoError(t, store.StoreSaved(ctx, 1, []model.SavedItem{{ID: "1"}}))
	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{{ID: "1"}}))

	require.NoError(t, store.ClearSaved(ctx, 1))
	require.NoError(t, store.ClearMessages(ctx, 1))

	saved, err := store.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, saved)
	messages, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	require.NoError(t, store.StoreSaved(ctx, 1, []model.SavedItem{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, store.StoreSaved(ctx, 1, []model.SavedItem{{ID: "3"}}))

	got, err := store.LoadSaved(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}
