package flow

import (
	"context"
	"fmt"
)

// GenerateScriptInput 是短视频/视频脚本工具的输入。
type GenerateScriptInput struct {
	Topic    string `json:"topic" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=YouTube Instagram TikTok"`
	Duration int    `json:"duration" binding:"required,min=1,max=30"`
	Tone     string `json:"tone" binding:"required"`
}

// GenerateScriptOutput 是脚本工具的输出。
type GenerateScriptOutput struct {
	Script string `json:"script"`
}

// GenerateScript 根据主题、平台、时长与语气生成一份脚本。
func (inv *Invoker) GenerateScript(ctx context.Context, in GenerateScriptInput) (*GenerateScriptOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert script writer for %s videos.  Generate a %d minute script on the topic of %q with a %s tone.\n\nScript:",
		in.Platform, in.Duration, in.Topic, in.Tone)

	script, err := inv.generateField(ctx, prompt, "script")
	if err != nil {
		return nil, err
	}
	return &GenerateScriptOutput{Script: script}, nil
}
