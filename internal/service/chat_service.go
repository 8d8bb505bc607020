package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fasto-go/internal/flow"
	"fasto-go/internal/model"
	"fasto-go/internal/repository"
	"fasto-go/pkg/llm"
	"fasto-go/pkg/log"

	"github.com/gorilla/websocket"
)

// ApologyMessage 是生成失败时写入会话的固定助手消息。
const ApologyMessage = "Sorry, I encountered an error. Please try again."

// ErrBusy 表示该用户已有一个生成请求在进行中。
// 同一用户同一时刻只允许一个在途请求，且在途请求不可取消。
var ErrBusy = errors.New("a response is already in progress")

// ErrNoUserMessage 表示重新生成时找不到可以复用的用户消息。
var ErrNoUserMessage = errors.New("no previous user message to regenerate from")

// ChatService 实现聊天会话控制：乐观地追加用户消息、调用模型、
// 追加助手回复或固定的道歉消息，并维护持久化的会话记录。
type ChatService interface {
	// StreamResponse 处理一次用户提交，向 ws 流式下发回复分块。
	StreamResponse(ctx context.Context, user *model.User, text, image string, w llm.MessageWriter) error
	// Regenerate 删除最近一条助手消息，用最近一条用户消息的文本重新生成。
	Regenerate(ctx context.Context, user *model.User, w llm.MessageWriter) error
}

type chatService struct {
	llmClient llm.Client
	store     repository.ContentStore
	// 每用户一个在途标志；提交入口在标志置位期间拒绝新请求
	busy sync.Map // key: userID, value: *atomic.Bool
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(llmClient llm.Client, store repository.ContentStore) ChatService {
	return &chatService{
		llmClient: llmClient,
		store:     store,
	}
}

func (s *chatService) busyFlag(userID uint) *atomic.Bool {
	v, _ := s.busy.LoadOrStore(userID, &atomic.Bool{})
	return v.(*atomic.Bool)
}

// StreamResponse 先把用户消息写入会话（乐观更新），再调用模型。
// 持久化失败不回滚内存中的会话，只记录并提示；这是已知的不一致窗口。
func (s *chatService) StreamResponse(ctx context.Context, user *model.User, text, image string, w llm.MessageWriter) error {
	busy := s.busyFlag(user.ID)
	if !busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer busy.Store(false)

	messages, err := s.store.LoadMessages(ctx, user.ID)
	if err != nil {
		log.Errorf("读取会话记录失败，按空会话继续: userID=%d, err=%v", user.ID, err)
		messages = []model.ChatMessage{}
	}

	userMsg := model.ChatMessage{
		ID:     model.NewMessageID(lastMessageID(messages)),
		Text:   text,
		IsUser: true,
		Image:  image,
	}
	messages = append(messages, userMsg)
	if err := s.store.StoreMessages(ctx, user.ID, messages); err != nil {
		// 不回滚：本次会话在内存中继续，下次读取时该消息可能缺失
		log.Errorf("持久化用户消息失败: userID=%d, err=%v", user.ID, err)
	}

	return s.generate(ctx, user.ID, text, messages, w)
}

// Regenerate 删除最近一条助手消息（若有），并复用最近一条用户消息的文本。
func (s *chatService) Regenerate(ctx context.Context, user *model.User, w llm.MessageWriter) error {
	busy := s.busyFlag(user.ID)
	if !busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer busy.Store(false)

	messages, err := s.store.LoadMessages(ctx, user.ID)
	if err != nil {
		return err
	}

	if n := len(messages); n > 0 && !messages[n-1].IsUser {
		messages = messages[:n-1]
		if err := s.store.StoreMessages(ctx, user.ID, messages); err != nil {
			log.Errorf("持久化删除的助手消息失败: userID=%d, err=%v", user.ID, err)
		}
	}

	var lastUserText string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser {
			lastUserText = messages[i].Text
			break
		}
	}
	if lastUserText == "" {
		return ErrNoUserMessage
	}

	return s.generate(ctx, user.ID, lastUserText, messages, w)
}

// generate 调用模型流式生成回复，成功后把助手消息追加到会话并持久化；
// 失败时追加固定的道歉消息并返回错误，由 handler 下发错误通知。
func (s *chatService) generate(ctx context.Context, userID uint, text string, messages []model.ChatMessage, w llm.MessageWriter) error {
	answerBuilder := &strings.Builder{}
	interceptor := &wsWriterInterceptor{conn: w, writer: answerBuilder}

	llmMsgs := []llm.Message{{Role: "user", Content: flow.ChatPrompt(text)}}
	streamErr := s.llmClient.StreamChatMessages(ctx, llmMsgs, nil, interceptor)

	fullAnswer := answerBuilder.String()
	if streamErr == nil && strings.TrimSpace(fullAnswer) == "" {
		// 模型返回了空回复，按硬失败处理，不编造默认值
		streamErr = flow.ErrEmptyOutput
	}

	assistantText := fullAnswer
	if streamErr != nil {
		assistantText = ApologyMessage
	}
	messages = append(messages, model.ChatMessage{
		ID:     model.NewMessageID(lastMessageID(messages)),
		Text:   assistantText,
		IsUser: false,
	})

	// 使用后台上下文，原始请求被取消时也要把已生成的回复保存下来
	if err := s.store.StoreMessages(context.Background(), userID, messages); err != nil {
		log.Errorf("持久化助手消息失败: userID=%d, err=%v", userID, err)
	}

	if streamErr != nil {
		return streamErr
	}
	sendCompletion(w)
	return nil
}

func lastMessageID(messages []model.ChatMessage) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].ID
}

// wsWriterInterceptor 是对 websocket.Conn 的封装，用于捕获写入的消息。
type wsWriterInterceptor struct {
	conn   llm.MessageWriter
	writer *strings.Builder
}

// WriteMessage 满足 llm.MessageWriter 接口。
func (w *wsWriterInterceptor) WriteMessage(messageType int, data []byte) error {
	w.writer.Write(data)
	// 将原始分块包装成 {"chunk":"..."}
	payload := map[string]string{"chunk": string(data)}
	b, _ := json.Marshal(payload)
	return w.conn.WriteMessage(messageType, b)
}

// sendCompletion 发送完成通知 JSON
func sendCompletion(w llm.MessageWriter) {
	notif := map[string]interface{}{
		"type":      "completion",
		"status":    "finished",
		"timestamp": time.Now().UnixMilli(),
		"date":      time.Now().Format("2006-01-02T15:04:05"),
	}
	b, _ := json.Marshal(notif)
	_ = w.WriteMessage(websocket.TextMessage, b)
}
