package flow

import (
	"context"
	"fmt"
)

// ImageToTextInput 是图片取字工具的输入。图片以 data URI 传入，
// 必须包含 MIME 类型并使用 Base64 编码。
type ImageToTextInput struct {
	PhotoDataURI string `json:"photoDataUri" binding:"required,startswith=data:"`
}

// ImageToTextOutput 是图片取字工具的输出。
type ImageToTextOutput struct {
	Text string `json:"text"`
}

// ImageToText 提取图片中出现的文字。
func (inv *Invoker) ImageToText(ctx context.Context, in ImageToTextInput) (*ImageToTextOutput, error) {
	prompt := fmt.Sprintf("Extract any text from the following image: %s", in.PhotoDataURI)

	text, err := inv.generateField(ctx, prompt, "text")
	if err != nil {
		return nil, err
	}
	return &ImageToTextOutput{Text: text}, nil
}
