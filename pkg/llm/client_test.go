package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fasto-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	chunks []string
}

func (w *recordingWriter) WriteMessage(messageType int, data []byte) error {
	w.chunks = append(w.chunks, string(data))
	return nil
}

func TestCompleteReturnsContent(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"script\":\"hi\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})
	got, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "p"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, `{"script":"hi"}`, got)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.False(t, gotReq.Stream)
}

func TestCompleteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "m"})
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "p"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-200")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "m"})
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "p"}}, nil)
	require.Error(t, err)
}

func TestStreamChatMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n")
		_, _ = io.WriteString(w, "\n")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n")
		_, _ = io.WriteString(w, "\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n")
	}))
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "m"})
	rec := &recordingWriter{}
	err := client.StreamChatMessages(context.Background(), []Message{{Role: "user", Content: "p"}}, nil, rec)
	require.NoError(t, err)

	// [DONE] 之后的分块不再下发
	assert.Equal(t, []string{"Hel", "lo"}, rec.chunks)
}

func TestStreamChatMessagesSkipsMalformedChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: not-json\n")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	client := NewClient(config.LLMConfig{BaseURL: srv.URL, Model: "m"})
	rec := &recordingWriter{}
	err := client.StreamChatMessages(context.Background(), []Message{{Role: "user", Content: "p"}}, nil, rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, rec.chunks)
}

func TestBuildRequestGenerationParams(t *testing.T) {
	c := &chatClient{cfg: config.LLMConfig{
		Model: "m",
		Generation: config.LLMGenerationConfig{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   256,
		},
	}}

	// 未传参时使用配置中的生成参数
	req := c.buildRequest([]Message{{Role: "user", Content: "p"}}, nil, true)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
	require.NotNil(t, req.TopP)
	assert.InDelta(t, 0.9, *req.TopP, 1e-9)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 256, *req.MaxTokens)
	assert.True(t, req.Stream)

	// 传参优先生效
	temp := 0.1
	req = c.buildRequest(nil, &GenerationParams{Temperature: &temp}, false)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.1, *req.Temperature, 1e-9)
	assert.Nil(t, req.TopP)
	assert.Nil(t, req.MaxTokens)
}
