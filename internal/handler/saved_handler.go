// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"fasto-go/internal/model"
	"fasto-go/internal/service"
	"fasto-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SavedHandler 处理与保存内容相关的 API 请求。
type SavedHandler struct {
	contentService service.ContentService
}

// NewSavedHandler 创建一个新的 SavedHandler。
func NewSavedHandler(contentService service.ContentService) *SavedHandler {
	return &SavedHandler{contentService: contentService}
}

// List 返回当前用户保存的全部内容，支持 ?q= 搜索过滤。
// 存储读取失败时返回空集合和提示语，而不是报错中断页面。
func (h *SavedHandler) List(c *gin.Context) {
	claims := mustClaims(c)

	items, err := h.contentService.LoadSaved(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "无法加载保存的内容，已按空集合展示",
			"data":    []model.SavedItem{},
		})
		return
	}

	if term := c.Query("q"); term != "" {
		items = h.contentService.SearchSaved(items, term)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    items,
	})
}

// SaveItemRequest 定义了保存内容 API 的请求体结构。
// ID 和日期由服务端分配，客户端只提供内容本身。
// Tags 完全由客户端决定：各工具页在保存时带上自己的约定标签
// （例如配文工具保存时带 "caption" 和小写的平台名），服务端不追加也不校验。
type SaveItemRequest struct {
	Type    model.ItemType `json:"type" binding:"required"`
	Title   string         `json:"title" binding:"required"`
	Content string         `json:"content" binding:"required"`
	Tags    []string       `json:"tags"`
}

// Save 将一条生成结果加入用户的保存集合（头部）。
func (h *SavedHandler) Save(c *gin.Context) {
	claims := mustClaims(c)

	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Save: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：type、title 和 content 不能为空",
		})
		return
	}

	item, err := h.contentService.SaveItem(c.Request.Context(), claims.UserID, model.SavedItem{
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		log.Errorf("Save: Failed to persist item for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "保存失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    item,
	})
}

// Delete 删除 id 对应的保存内容。id 不存在时同样返回成功。
func (h *SavedHandler) Delete(c *gin.Context) {
	claims := mustClaims(c)

	if err := h.contentService.DeleteSaved(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		log.Errorf("Delete: Failed to delete saved item for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "删除失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// Clear 清空当前用户的全部保存内容。
func (h *SavedHandler) Clear(c *gin.Context) {
	claims := mustClaims(c)

	if err := h.contentService.ClearSaved(c.Request.Context(), claims.UserID); err != nil {
		log.Errorf("Clear: Failed to clear saved items for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "清空失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
