package prompt

import "strings"

const (
	separator  = "\n\n"
	inputLabel = "User Input: "
)

// Compose 将系统提示词与原始用户输入拼接为发送给模型的文本，输入不做任何处理。
func Compose(system, input string) string {
	var builder strings.Builder
	builder.Grow(len(system) + len(separator) + len(inputLabel) + len(input))
	builder.WriteString(system)
	builder.WriteString(separator)
	builder.WriteString(inputLabel)
	builder.WriteString(input)
	return builder.String()
}
