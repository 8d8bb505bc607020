package repository

import (
	"context"
	"testing"

	"fasto-go/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStoreForTest(t *testing.T) (ContentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewContentStore(client), mr
}

func TestRedisStoreMissingKeyIsEmptyCollection(t *testing.T) {
	store, _ := newRedisStoreForTest(t)
	ctx := context.Background()

	saved, err := store.LoadSaved(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Empty(t, saved)

	messages, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStoreForTest(t)
	ctx := context.Background()

	items := []model.SavedItem{
		{ID: "1", Type: model.ItemTypeCaption, Title: "t", Content: "c", Date: "2026-01-02T03:04:05Z", Tags: []string{"caption", "instagram"}},
	}
	require.NoError(t, store.StoreSaved(ctx, 1, items))
	gotItems, err := store.LoadSaved(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, items, gotItems)

	messages := []model.ChatMessage{
		{ID: "100", Text: "hi", IsUser: true, Image: "data:image/png;base64,AAAA"},
		{ID: "101", Text: "hello", IsUser: false},
	}
	require.NoError(t, store.StoreMessages(ctx, 1, messages))
	gotMessages, err := store.LoadMessages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, messages, gotMessages)
}

// 键里存着无法解析的值时读取返回错误，由 service 层退化为空集合。
func TestRedisStoreUnmarshalFailure(t *testing.T) {
	store, mr := newRedisStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:1:saved", "not-json"))
	_, err := store.LoadSaved(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")

	require.NoError(t, mr.Set("user:1:chat_messages", "{broken"))
	_, err = store.LoadMessages(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestRedisStoreClearDeletesKeys(t *testing.T) {
	store, mr := newRedisStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.StoreSaved(ctx, 1, []model.SavedItem{{ID: "1"}}))
	require.NoError(t, store.StoreMessages(ctx, 1, []model.ChatMessage{{ID: "1"}}))

	require.NoError(t, store.ClearSaved(ctx, 1))
	require.NoError(t, store.ClearMessages(ctx, 1))

	assert.False(t, mr.Exists("user:1:saved"))
	assert.False(t, mr.Exists("user:1:chat_messages"))
}

func TestRedisStoreKeysAreScopedPerUser(t *testing.T) {
	store, _ := newRedisStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.StoreSaved(ctx, 1, []model.SavedItem{{ID: "mine"}}))

	other, err := store.LoadSaved(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}
