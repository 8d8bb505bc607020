package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"fasto-go/internal/flow"
	"fasto-go/pkg/llm"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLMClient 是 llm.Client 的测试替身。
type fakeLLMClient struct {
	reply    string
	err      error
	streamFn func(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams, w llm.MessageWriter) error
}

func (f *fakeLLMClient) Complete(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLMClient) StreamChatMessages(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams, w llm.MessageWriter) error {
	if f.streamFn == nil {
		return errors.New("unexpected stream call")
	}
	return f.streamFn(ctx, messages, gen, w)
}

func newToolRouter(client llm.Client) *gin.Engine {
	r := gin.New()
	r.Use(injectClaims(1, "alice"))
	h := NewToolHandler(flow.NewInvoker(client))
	r.POST("/tools/script", h.GenerateScript)
	r.POST("/tools/captions", h.GenerateCaptions)
	r.POST("/tools/image-to-text", h.ImageToText)
	return r
}

func TestGenerateScriptEndpoint(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{reply: `{"script":"INTRO: hello"}`})

	w, env := doJSON(t, r, http.MethodPost, "/tools/script", map[string]interface{}{
		"topic":    "baking",
		"platform": "YouTube",
		"duration": 5,
		"tone":     "friendly",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, env.Code)

	var out flow.GenerateScriptOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "INTRO: hello", out.Script)
}

func TestGenerateScriptRejectsInvalidInput(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{reply: `{"script":"x"}`})

	// 不支持的平台
	w, _ := doJSON(t, r, http.MethodPost, "/tools/script", map[string]interface{}{
		"topic": "baking", "platform": "MySpace", "duration": 5, "tone": "friendly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 时长超出范围
	w, _ = doJSON(t, r, http.MethodPost, "/tools/script", map[string]interface{}{
		"topic": "baking", "platform": "YouTube", "duration": 45, "tone": "friendly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 缺少必填字段
	w, _ = doJSON(t, r, http.MethodPost, "/tools/script", map[string]interface{}{
		"topic": "baking",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateScriptUpstreamFailure(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{err: errors.New("upstream down")})

	w, env := doJSON(t, r, http.MethodPost, "/tools/script", map[string]interface{}{
		"topic": "baking", "platform": "YouTube", "duration": 5, "tone": "friendly",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, http.StatusBadGateway, env.Code)
}

func TestGenerateCaptionsEndpoint(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{reply: `{"caption":"fresh coffee, no filter"}`})

	w, env := doJSON(t, r, http.MethodPost, "/tools/captions", map[string]interface{}{
		"topic": "coffee", "platform": "Instagram", "tone": "playful",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out flow.GenerateCaptionsOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "fresh coffee, no filter", out.Caption)
}

func TestImageToTextRejectsNonDataURI(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{reply: `{"text":"x"}`})

	w, _ := doJSON(t, r, http.MethodPost, "/tools/image-to-text", map[string]interface{}{
		"photoDataUri": "https://example.com/image.png",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageToTextEndpoint(t *testing.T) {
	r := newToolRouter(&fakeLLMClient{reply: `{"text":"EXIT"}`})

	w, env := doJSON(t, r, http.MethodPost, "/tools/image-to-text", map[string]interface{}{
		"photoDataUri": "data:image/png;base64,AAAA",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out flow.ImageToTextOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "EXIT", out.Text)
}
