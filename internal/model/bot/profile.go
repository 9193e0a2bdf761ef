package bot

import "github.com/zhouzirui/emoji-bot/backend/internal/analysis/sentiment"

// Profile 展示层在输入框周围显示的文案
type Profile struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Subtitle     string      `json:"subtitle"`
	InputLabel   string      `json:"inputLabel"`
	ProgressText string      `json:"progressText"`
	Sentiments   []Sentiment `json:"sentiments"`
}

// Sentiment 一组情绪关键词与追加的表情
type Sentiment struct {
	Keyword string `json:"keyword"`
	Glyph   string `json:"glyph"`
}

// Default 返回表情机器人的默认资料
func Default() Profile {
	entries := sentiment.Table()
	sentiments := make([]Sentiment, 0, len(entries))
	for _, entry := range entries {
		sentiments = append(sentiments, Sentiment{Keyword: string(entry.Label), Glyph: entry.Glyph})
	}

	return Profile{
		ID:           "emoji-bot",
		Title:        "Chatbot with Emoji Understanding and Generation",
		Subtitle:     "Chat with the Bot",
		InputLabel:   "Enter your message (text or emojis):",
		ProgressText: "Generating response...",
		Sentiments:   sentiments,
	}
}
