package flow

import (
	"context"
	"fmt"
)

// GenerateVoiceoverScriptInput 是配音脚本工具的输入。
type GenerateVoiceoverScriptInput struct {
	Topic    string `json:"topic" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Tone     string `json:"tone" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

// GenerateVoiceoverScriptOutput 是配音脚本工具的输出。
type GenerateVoiceoverScriptOutput struct {
	Script string `json:"script"`
}

// GenerateVoiceoverScript 生成一份便于朗读的配音脚本。
func (inv *Invoker) GenerateVoiceoverScript(ctx context.Context, in GenerateVoiceoverScriptInput) (*GenerateVoiceoverScriptOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert script writer for voiceovers.\n"+
			"Generate a %d minute voiceover script on the topic of %q with a %s tone for a %s.\n\n"+
			"The script should be easy to read aloud, with natural pauses and clear language.\n"+
			"Format the output as a single block of text.",
		in.Duration, in.Topic, in.Tone, in.Platform)

	script, err := inv.generateField(ctx, prompt, "script")
	if err != nil {
		return nil, err
	}
	return &GenerateVoiceoverScriptOutput{Script: script}, nil
}
