// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fasto-go/internal/service"
	"fasto-go/pkg/kafka"
	"fasto-go/pkg/log"
	"fasto-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 允许所有来源
		},
	}
)

// ChatHandler 负责处理 WebSocket 聊天连接。
type ChatHandler struct {
	chatService service.ChatService
	userService service.UserService
	jwtManager  *token.JWTManager
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService, userService service.UserService, jwtManager *token.JWTManager) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// inboundMessage 是客户端发来的消息格式。
// 普通消息: {"message":"...","image":"data:..."}；
// 控制消息: {"type":"regenerate"}。
type inboundMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Image   string `json:"image"`
}

// Handle 处理一个传入的 WebSocket 连接。
func (h *ChatHandler) Handle(c *gin.Context) {
	tokenString := c.Param("token")
	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "无效的 token", "data": nil})
		return
	}
	if h.userService.IsTokenRevoked(tokenString) {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "token 已失效", "data": nil})
		return
	}

	// 获取用户模型
	user, err := h.userService.GetProfile(claims.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "无法获取用户信息", "data": nil})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立，用户: %s", claims.Username)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		var in inboundMessage
		if len(message) > 0 && message[0] == '{' {
			if err := json.Unmarshal(message, &in); err != nil {
				log.Warnf("解析 WebSocket 消息失败: %v", err)
				continue
			}
		} else {
			// 裸文本按普通消息处理（保留兼容）
			in.Message = string(message)
		}

		start := time.Now()
		switch {
		case in.Type == "regenerate":
			err = h.chatService.Regenerate(c.Request.Context(), user, conn)
		case in.Message != "":
			err = h.chatService.StreamResponse(c.Request.Context(), user, in.Message, in.Image, conn)
		default:
			continue
		}

		// 忙碌拒绝不是一次生成，不计入用量
		if !errors.Is(err, service.ErrBusy) {
			kafka.PublishGenerationEvent(kafka.GenerationEvent{
				Tool:      "chat",
				UserID:    user.ID,
				Success:   err == nil,
				LatencyMs: time.Since(start).Milliseconds(),
			})
		}

		if err != nil {
			h.writeStreamError(conn, err)
		}
	}
}

// writeStreamError 向客户端发送统一的错误响应。
// 除"正在生成中"以外的错误会补发 completion 通知，让前端退出加载态。
func (h *ChatHandler) writeStreamError(conn *websocket.Conn, err error) {
	if errors.Is(err, service.ErrBusy) {
		b, _ := json.Marshal(map[string]string{"error": "已有一个回复正在生成中，请稍候"})
		_ = conn.WriteMessage(websocket.TextMessage, b)
		return
	}

	log.Errorf("处理流式响应失败: %v", err)
	b, _ := json.Marshal(map[string]string{"error": "AI服务暂时不可用，请稍后重试"})
	_ = conn.WriteMessage(websocket.TextMessage, b)

	// 错误时也发送 completion 通知
	resp := map[string]interface{}{
		"type":      "completion",
		"status":    "finished",
		"message":   "响应已完成",
		"timestamp": time.Now().UnixMilli(),
		"date":      time.Now().Format("2006-01-02T15:04:05"),
	}
	cb, _ := json.Marshal(resp)
	_ = conn.WriteMessage(websocket.TextMessage, cb)
}
