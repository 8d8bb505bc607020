// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"time"

	"fasto-go/internal/flow"
	"fasto-go/internal/model"
	"fasto-go/pkg/kafka"
	"fasto-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ToolHandler 负责处理所有内容生成工具的 API 请求。
// 每个工具对应一个独立的端点，请求体即工具的输入参数。
type ToolHandler struct {
	invoker *flow.Invoker
}

// NewToolHandler 创建一个新的 ToolHandler 实例。
func NewToolHandler(invoker *flow.Invoker) *ToolHandler {
	return &ToolHandler{invoker: invoker}
}

// currentUserID 从上下文中取出 AuthMiddleware 注入的用户 ID。
func currentUserID(c *gin.Context) uint {
	userValue, ok := c.Get("user")
	if !ok {
		return 0
	}
	user, ok := userValue.(*model.User)
	if !ok || user == nil {
		return 0
	}
	return user.ID
}

// respondInvalidInput 返回统一的参数校验失败响应。
func respondInvalidInput(c *gin.Context, tool string, err error) {
	log.Warnf("%s: Invalid request payload, error: %v", tool, err)
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": "无效的请求负载：" + err.Error(),
	})
}

// finishGeneration 上报一次生成事件并返回工具结果。
// 生成失败时返回 502，调用方（前端）据此提示用户重试。
func finishGeneration(c *gin.Context, tool string, start time.Time, data interface{}, err error) {
	kafka.PublishGenerationEvent(kafka.GenerationEvent{
		Tool:      tool,
		UserID:    currentUserID(c),
		Success:   err == nil,
		LatencyMs: time.Since(start).Milliseconds(),
	})

	if err != nil {
		log.Errorf("%s: Generation failed, error: %v", tool, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    http.StatusBadGateway,
			"message": "AI服务暂时不可用，请稍后重试",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

// GenerateScript 处理脚本生成请求。
func (h *ToolHandler) GenerateScript(c *gin.Context) {
	var in flow.GenerateScriptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-script", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateScript(c.Request.Context(), in)
	finishGeneration(c, "generate-script", start, out, err)
}

// GenerateYoutubeScript 处理 YouTube 视频脚本生成请求。
func (h *ToolHandler) GenerateYoutubeScript(c *gin.Context) {
	var in flow.GenerateYoutubeScriptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-youtube-script", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateYoutubeScript(c.Request.Context(), in)
	finishGeneration(c, "generate-youtube-script", start, out, err)
}

// GenerateCaptions 处理社交媒体配文生成请求。
func (h *ToolHandler) GenerateCaptions(c *gin.Context) {
	var in flow.GenerateCaptionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-captions", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateCaptions(c.Request.Context(), in)
	finishGeneration(c, "generate-captions", start, out, err)
}

// GenerateBios 处理个人简介生成请求。
func (h *ToolHandler) GenerateBios(c *gin.Context) {
	var in flow.GenerateBiosInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-bios", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateBios(c.Request.Context(), in)
	finishGeneration(c, "generate-bios", start, out, err)
}

// GenerateProductDescription 处理商品描述生成请求。
func (h *ToolHandler) GenerateProductDescription(c *gin.Context) {
	var in flow.GenerateProductDescriptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-product-description", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateProductDescription(c.Request.Context(), in)
	finishGeneration(c, "generate-product-description", start, out, err)
}

// GenerateSongLyrics 处理歌词生成请求。
func (h *ToolHandler) GenerateSongLyrics(c *gin.Context) {
	var in flow.GenerateSongLyricsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-song-lyrics", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateSongLyrics(c.Request.Context(), in)
	finishGeneration(c, "generate-song-lyrics", start, out, err)
}

// GenerateNewsletter 处理邮件简报生成请求。
func (h *ToolHandler) GenerateNewsletter(c *gin.Context) {
	var in flow.GenerateNewsletterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-newsletter", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateNewsletter(c.Request.Context(), in)
	finishGeneration(c, "generate-newsletter", start, out, err)
}

// GeneratePodcastScript 处理播客脚本生成请求。
func (h *ToolHandler) GeneratePodcastScript(c *gin.Context) {
	var in flow.GeneratePodcastScriptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-podcast-script", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GeneratePodcastScript(c.Request.Context(), in)
	finishGeneration(c, "generate-podcast-script", start, out, err)
}

// GenerateBlogPost 处理博客文章生成请求。
func (h *ToolHandler) GenerateBlogPost(c *gin.Context) {
	var in flow.GenerateBlogPostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-blog-post", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateBlogPost(c.Request.Context(), in)
	finishGeneration(c, "generate-blog-post", start, out, err)
}

// GenerateVoiceoverScript 处理配音脚本生成请求。
func (h *ToolHandler) GenerateVoiceoverScript(c *gin.Context) {
	var in flow.GenerateVoiceoverScriptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "generate-voiceover-script", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.GenerateVoiceoverScript(c.Request.Context(), in)
	finishGeneration(c, "generate-voiceover-script", start, out, err)
}

// ImageToText 处理图片文字提取请求。
func (h *ToolHandler) ImageToText(c *gin.Context) {
	var in flow.ImageToTextInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidInput(c, "image-to-text", err)
		return
	}
	start := time.Now()
	out, err := h.invoker.ImageToText(c.Request.Context(), in)
	finishGeneration(c, "image-to-text", start, out, err)
}
