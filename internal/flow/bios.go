package flow

import (
	"context"
	"fmt"
)

// GenerateBiosInput 是社交媒体简介工具的输入。
type GenerateBiosInput struct {
	Topic    string `json:"topic" binding:"required"`
	Keywords string `json:"keywords" binding:"required"`
	Tone     string `json:"tone" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

// GenerateBiosOutput 是简介工具的输出。
type GenerateBiosOutput struct {
	Bio string `json:"bio"`
}

// GenerateBios 为社交媒体主页生成一段简介。
func (inv *Invoker) GenerateBios(ctx context.Context, in GenerateBiosInput) (*GenerateBiosOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert social media strategist. Your goal is to write a creative and attention-grabbing bio "+
			"for a social media profile, based on the provided information.\n\n"+
			"Here are the details:\n- Topic: %s\n- Keywords: %s\n- Tone: %s\n- Platform: %s\n\n"+
			"Please generate a bio that is appropriate for the specified platform and tone. The bio should be "+
			"concise, engaging, and reflective of the profile's main topic and keywords.\n"+
			"The output should be only the bio, and nothing else.",
		in.Topic, in.Keywords, in.Tone, in.Platform)

	bio, err := inv.generateField(ctx, prompt, "bio")
	if err != nil {
		return nil, err
	}
	return &GenerateBiosOutput{Bio: bio}, nil
}
