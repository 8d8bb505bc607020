package flow

import (
	"context"
	"fmt"
)

// GenerateNewsletterInput 是邮件通讯工具的输入。
type GenerateNewsletterInput struct {
	Topic          string `json:"topic" binding:"required"`
	TargetAudience string `json:"targetAudience" binding:"required"`
	Tone           string `json:"tone" binding:"required"`
	CallToAction   string `json:"callToAction" binding:"required"`
}

// GenerateNewsletterOutput 是邮件通讯工具的输出。
type GenerateNewsletterOutput struct {
	Newsletter string `json:"newsletter"`
}

// GenerateNewsletter 生成一封可直接用于邮件营销的通讯，含主题行与正文。
func (inv *Invoker) GenerateNewsletter(ctx context.Context, in GenerateNewsletterInput) (*GenerateNewsletterOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert email marketer and copywriter.\n"+
			"Generate a complete newsletter ready for an email campaign based on the following details. "+
			"The output should be a single block of text and include a compelling Subject Line.\n\n"+
			"Topic: %s\nTarget Audience: %s\nTone: %s\nCall to Action: %s\n\n"+
			"Instructions:\n"+
			"1.  Write a catchy and concise subject line.\n"+
			"2.  Write a personalized greeting.\n"+
			"3.  Craft an engaging body text that explains the topic and provides value.\n"+
			"4.  Seamlessly integrate the call to action.\n"+
			"5.  End with a professional closing.",
		in.Topic, in.TargetAudience, in.Tone, in.CallToAction)

	newsletter, err := inv.generateField(ctx, prompt, "newsletter")
	if err != nil {
		return nil, err
	}
	return &GenerateNewsletterOutput{Newsletter: newsletter}, nil
}
