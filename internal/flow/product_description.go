package flow

import (
	"context"
	"fmt"
)

// GenerateProductDescriptionInput 是商品描述工具的输入。
type GenerateProductDescriptionInput struct {
	ProductName    string `json:"productName" binding:"required"`
	Features       string `json:"features" binding:"required"`
	TargetAudience string `json:"targetAudience" binding:"required"`
	Tone           string `json:"tone" binding:"required"`
}

// GenerateProductDescriptionOutput 是商品描述工具的输出。
type GenerateProductDescriptionOutput struct {
	Description string `json:"description"`
}

// GenerateProductDescription 为电商商品生成一段销售文案。
func (inv *Invoker) GenerateProductDescription(ctx context.Context, in GenerateProductDescriptionInput) (*GenerateProductDescriptionOutput, error) {
	prompt := fmt.Sprintf(
		"You are an expert e-commerce copywriter specializing in creating persuasive and high-converting product descriptions.\n\n"+
			"Generate a compelling product description for the following product:\n\n"+
			"Product Name: %s\nKey Features: %s\nTarget Audience: %s\nTone: %s\n\n"+
			"Instructions:\n"+
			"1.  Start with a catchy headline or opening sentence.\n"+
			"2.  Elaborate on the key features, turning them into benefits for the customer.\n"+
			"3.  Use a tone that resonates with the target audience.\n"+
			"4.  Keep the description concise but informative. Use bullet points for readability.\n"+
			"5.  End with a persuasive closing statement.\n\n"+
			"The output should be a single block of text, well-formatted for a product page.",
		in.ProductName, in.Features, in.TargetAudience, in.Tone)

	description, err := inv.generateField(ctx, prompt, "description")
	if err != nil {
		return nil, err
	}
	return &GenerateProductDescriptionOutput{Description: description}, nil
}
