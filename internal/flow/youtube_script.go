package flow

import (
	"context"
	"fmt"
)

// GenerateYoutubeScriptInput 是 YouTube 脚本工具的输入。
type GenerateYoutubeScriptInput struct {
	Topic    string `json:"topic" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1,max=30"`
	Tone     string `json:"tone" binding:"required"`
}

// GenerateYoutubeScriptOutput 是 YouTube 脚本工具的输出。
type GenerateYoutubeScriptOutput struct {
	Script string `json:"script"`
}

// GenerateYoutubeScript 生成一份指定时长与语气的 YouTube 视频脚本。
func (inv *Invoker) GenerateYoutubeScript(ctx context.Context, in GenerateYoutubeScriptInput) (*GenerateYoutubeScriptOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert YouTube script writer. Generate a script based on the following criteria:\n\n"+
			"Topic: %s\nDuration: %d minutes\nTone: %s\n\n"+
			"Make sure the script is well-formatted and engaging. Do not include any symbols like *-..-#@.",
		in.Topic, in.Duration, in.Tone)

	script, err := inv.generateField(ctx, prompt, "script")
	if err != nil {
		return nil, err
	}
	return &GenerateYoutubeScriptOutput{Script: script}, nil
}
