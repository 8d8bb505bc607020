package flow

import (
	"context"
	"fmt"
)

// GenerateSongLyricsInput 是歌词工具的输入。
type GenerateSongLyricsInput struct {
	Topic     string `json:"topic" binding:"required"`
	Genre     string `json:"genre" binding:"required,oneof=Pop Rap Rock Country Electronic"`
	Mood      string `json:"mood" binding:"required"`
	Structure string `json:"structure" binding:"required"`
}

// GenerateSongLyricsOutput 是歌词工具的输出。
type GenerateSongLyricsOutput struct {
	Lyrics string `json:"lyrics"`
}

// GenerateSongLyrics 按指定曲风、情绪与结构生成歌词。
func (inv *Invoker) GenerateSongLyrics(ctx context.Context, in GenerateSongLyricsInput) (*GenerateSongLyricsOutput, error) {
	prompt := fmt.Sprintf(
		"You are a professional songwriter and lyricist.\n"+
			"Write song lyrics based on the following specifications.\n\n"+
			"Genre: %s\nTopic: %s\nMood: %s\nStructure: %s\n\n"+
			"Instructions:\n"+
			"1.  Follow the specified structure (e.g., [Verse 1], [Chorus]).\n"+
			"2.  Use rhyming schemes and rhythms appropriate for the genre.\n"+
			"3.  The lyrics should be creative, evocative, and fit the specified mood.\n"+
			"4.  The final output should be the complete lyrics as a single string.",
		in.Genre, in.Topic, in.Mood, in.Structure)

	lyrics, err := inv.generateField(ctx, prompt, "lyrics")
	if err != nil {
		return nil, err
	}
	return &GenerateSongLyricsOutput{Lyrics: lyrics}, nil
}
