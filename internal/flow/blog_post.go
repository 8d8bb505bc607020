package flow

import (
	"context"
	"fmt"
)

// GenerateBlogPostInput 是博客文章工具的输入。
type GenerateBlogPostInput struct {
	Topic          string `json:"topic" binding:"required"`
	Keywords       string `json:"keywords" binding:"required"`
	Tone           string `json:"tone" binding:"required"`
	TargetAudience string `json:"targetAudience" binding:"required"`
}

// GenerateBlogPostOutput 是博客文章工具的输出，内容为 Markdown。
type GenerateBlogPostOutput struct {
	BlogPost string `json:"blogPost"`
}

// GenerateBlogPost 生成一篇长篇、SEO 友好的博客文章。
func (inv *Invoker) GenerateBlogPost(ctx context.Context, in GenerateBlogPostInput) (*GenerateBlogPostOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert SEO content writer specializing in creating long-form, engaging, and well-structured blog posts.\n"+
			"Generate a comprehensive, SEO-optimized blog post on the following topic.\n\n"+
			"Topic: %s\nTarget Audience: %s\nTone: %s\nKeywords to include: %s\n\n"+
			"Instructions:\n"+
			"1.  Create a compelling headline.\n"+
			"2.  Write an introduction that hooks the reader.\n"+
			"3.  Structure the post with clear headings and subheadings (using Markdown).\n"+
			"4.  Naturally integrate the provided keywords throughout the article.\n"+
			"5.  The article should be detailed, informative, and provide real value to the reader.\n"+
			"6.  Conclude with a summary and a call-to-action if appropriate.\n"+
			"7.  The entire output should be a single Markdown string.",
		in.Topic, in.TargetAudience, in.Tone, in.Keywords)

	blogPost, err := inv.generateField(ctx, prompt, "blogPost")
	if err != nil {
		return nil, err
	}
	return &GenerateBlogPostOutput{BlogPost: blogPost}, nil
}
