package flow

import (
	"context"
	"fmt"
)

// GeneratePodcastScriptInput 是播客脚本工具的输入。
type GeneratePodcastScriptInput struct {
	Topic    string `json:"topic" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Hosts    string `json:"hosts" binding:"required"`
	Tone     string `json:"tone" binding:"required"`
}

// GeneratePodcastScriptOutput 是播客脚本工具的输出。
type GeneratePodcastScriptOutput struct {
	Script string `json:"script"`
}

// GeneratePodcastScript 为多位主持人生成一期播客脚本。
func (inv *Invoker) GeneratePodcastScript(ctx context.Context, in GeneratePodcastScriptInput) (*GeneratePodcastScriptOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert podcast scriptwriter.\n"+
			"Generate a %d minute podcast script on the topic of %q.\n\n"+
			"Hosts: %s\nTone: %s\n\n"+
			"Instructions:\n"+
			"1.  Start with an engaging intro, including music cues if applicable.\n"+
			"2.  Write dialogue for each host, clearly indicating who is speaking.\n"+
			"3.  Structure the content logically with segments or talking points.\n"+
			"4.  Include cues for sound effects or transitions where appropriate (e.g., \"[SOUND of a gentle transition]\").\n"+
			"5.  End with a clear outro and call to action.\n"+
			"6.  The final output should be a well-formatted script as a single string.",
		in.Duration, in.Topic, in.Hosts, in.Tone)

	script, err := inv.generateField(ctx, prompt, "script")
	if err != nil {
		return nil, err
	}
	return &GeneratePodcastScriptOutput{Script: script}, nil
}
