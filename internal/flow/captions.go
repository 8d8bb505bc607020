package flow

import (
	"context"
	"fmt"
)

// GenerateCaptionsInput 是社交媒体文案工具的输入。Keywords 可选。
type GenerateCaptionsInput struct {
	Topic    string `json:"topic" binding:"required"`
	Platform string `json:"platform" binding:"required"`
	Tone     string `json:"tone" binding:"required"`
	Keywords string `json:"keywords"`
}

// GenerateCaptionsOutput 是文案工具的输出。
type GenerateCaptionsOutput struct {
	Caption string `json:"caption"`
}

// GenerateCaptions 为一条社交媒体帖子生成简短的配文。
// 280 字符的上限只写在提示词里，代码不做强制。
func (inv *Invoker) GenerateCaptions(ctx context.Context, in GenerateCaptionsInput) (*GenerateCaptionsOutput, error) {
	keywords := in.Keywords
	if keywords == "" {
		keywords = "None"
	}
	prompt := fmt.Sprintf(
		"You are an expert social media manager specializing in crafting engaging captions.\n\n"+
			"Generate a caption for a social media post with the following characteristics:\n\n"+
			"Topic: %s\nPlatform: %s\nTone: %s\nKeywords: %s\n\n"+
			"Ensure the caption is appropriate for the specified platform and tone. Be concise and attention-grabbing.\n"+
			"Since you are generating captions, do not include any hashtags or calls to action unless they are necessary for the caption.\n"+
			"Do not exceed 280 characters. Keep in mind you are using the \"Generate Captions\" tool and it is "+
			"important to ensure the output meets my intention for a social media post.",
		in.Topic, in.Platform, in.Tone, keywords)

	caption, err := inv.generateField(ctx, prompt, "caption")
	if err != nil {
		return nil, err
	}
	return &GenerateCaptionsOutput{Caption: caption}, nil
}
