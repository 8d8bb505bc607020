// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"fasto-go/internal/model"
	"fasto-go/internal/service"
	"fasto-go/pkg/log"
	"fasto-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// mustClaims 从上下文中取出 AuthMiddleware 注入的 token claims。
func mustClaims(c *gin.Context) *token.CustomClaims {
	return c.MustGet("claims").(*token.CustomClaims)
}

// HistoryHandler 处理与聊天历史相关的 API 请求。
// 历史是聊天消息集合的只读投影，删除操作作用于底层消息。
type HistoryHandler struct {
	contentService service.ContentService
}

// NewHistoryHandler 创建一个新的 HistoryHandler。
func NewHistoryHandler(contentService service.ContentService) *HistoryHandler {
	return &HistoryHandler{contentService: contentService}
}

// List 返回当前用户的聊天历史投影，支持 ?q= 搜索过滤。
func (h *HistoryHandler) List(c *gin.Context) {
	claims := mustClaims(c)

	items, err := h.contentService.LoadHistory(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "无法加载聊天历史，已按空集合展示",
			"data":    []model.HistoryItem{},
		})
		return
	}

	if term := c.Query("q"); term != "" {
		items = h.contentService.SearchHistory(items, term)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    items,
	})
}

// Delete 删除 id 对应的那一条历史记录。
func (h *HistoryHandler) Delete(c *gin.Context) {
	claims := mustClaims(c)

	if err := h.contentService.DeleteHistoryEntry(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		log.Errorf("Delete: Failed to delete history entry for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "删除失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// Clear 清空当前用户的全部聊天历史（即底层消息集合）。
func (h *HistoryHandler) Clear(c *gin.Context) {
	claims := mustClaims(c)

	if err := h.contentService.ClearHistory(c.Request.Context(), claims.UserID); err != nil {
		log.Errorf("Clear: Failed to clear history for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "清空失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
