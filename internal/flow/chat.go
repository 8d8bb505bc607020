package flow

// ChatPrompt 渲染自由聊天的提示词。聊天走流式通道，
// 不经过 generateField 的结构化输出约束。
func ChatPrompt(message string) string {
	return "You are a helpful AI assistant. Respond to the following message:\n\n" + message
}
