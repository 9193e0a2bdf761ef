package sentiment

import "strings"

// Label 表示可被识别的情绪关键词。
type Label string

const (
	Happy   Label = "happy"
	Sad     Label = "sad"
	Excited Label = "excited"
	Love    Label = "love"
	Angry   Label = "angry"
)

// Entry 关键词与命中时追加的表情
type Entry struct {
	Label Label
	Glyph string
}

// table 按声明顺序扫描，顺序决定追加表情的顺序。
var table = [...]Entry{
	{Label: Happy, Glyph: "😊"},
	{Label: Sad, Glyph: "😢"},
	{Label: Excited, Glyph: "🎉"},
	{Label: Love, Glyph: "❤️"},
	{Label: Angry, Glyph: "😡"},
}

// Table 按扫描顺序返回关键词表的副本
func Table() []Entry {
	return append([]Entry(nil), table[:]...)
}

// Detect 返回在文本中出现的情绪标签，不区分大小写，按子串匹配（"unhappy" 包含 "happy"）。
func Detect(text string) []Label {
	normalized := strings.ToLower(text)
	var labels []Label
	for _, entry := range table {
		if strings.Contains(normalized, string(entry.Label)) {
			labels = append(labels, entry.Label)
		}
	}
	return labels
}

// Decorate 按表顺序为每个命中的标签追加一次 " <glyph>"。对输出再次调用会重复追加，每条回复只调用一次。
func Decorate(text string) string {
	normalized := strings.ToLower(text)

	var builder strings.Builder
	builder.WriteString(text)
	for _, entry := range table {
		if strings.Contains(normalized, string(entry.Label)) {
			builder.WriteString(" ")
			builder.WriteString(entry.Glyph)
		}
	}
	return builder.String()
}
