// Package flow 实现各个内容生成工具：每个工具把一份校验过的输入
// 渲染进固定的提示词模板，调用一次外部模型，并解析出单个命名字段。
// flow 对本地状态没有副作用，失败时不重试也不编造默认输出。
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fasto-go/pkg/llm"
)

// ErrEmptyOutput 表示模型返回的结构化输出缺失或为空。
// 这是硬失败：flow 不会用默认值顶替。
var ErrEmptyOutput = errors.New("model returned an empty structured output")

// Invoker 持有模型客户端，是所有生成工具的入口。
type Invoker struct {
	client llm.Client
}

// NewInvoker 创建一个新的 Invoker 实例。
func NewInvoker(client llm.Client) *Invoker {
	return &Invoker{client: client}
}

// generateField 执行一次生成调用并解析出指定的输出字段。
// 通过 system 消息约束模型只输出一个包含该字段的 JSON 对象。
func (inv *Invoker) generateField(ctx context.Context, prompt, field string) (string, error) {
	messages := []llm.Message{
		{
			Role: "system",
			Content: fmt.Sprintf(
				"Answer with a single JSON object containing exactly one string field named %q. "+
					"Do not wrap the object in markdown fences and do not add any other keys or text.",
				field),
		},
		{Role: "user", Content: prompt},
	}

	raw, err := inv.client.Complete(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return extractField(raw, field)
}

// extractField 从模型回复中解析出命名字段。
// 模型偶尔仍会包一层 markdown 围栏，解析前先剥掉。
func extractField(raw, field string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return "", fmt.Errorf("failed to parse structured output: %w", err)
	}

	value, ok := obj[field].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", ErrEmptyOutput
	}
	return value, nil
}
