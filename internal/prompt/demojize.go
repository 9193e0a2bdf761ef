package prompt

import (
	"sort"
	"strings"
	"sync"

	"github.com/kyokomi/emoji/v2"
)

const variationSelector = "\ufe0f"

var demojizer = sync.OnceValue(newDemojizer)

// Demojize 将表情表中已知的表情替换为 :descriptor: 形式，其余内容原样保留。
func Demojize(text string) string {
	if text == "" {
		return text
	}
	return demojizer().Replace(text)
}

func newDemojizer() *strings.Replacer {
	// 以去掉 U+FE0F 后的字形为键合并别名，带与不带变体选择符的写法得到同一个名字。
	aliases := make(map[string][]string)
	for glyph, codes := range emoji.RevCodeMap() {
		base := strings.TrimSuffix(glyph, variationSelector)
		if len(base) < 2 {
			continue
		}
		aliases[base] = append(aliases[base], codes...)
	}

	table := make(map[string]string, len(aliases)*2)
	for base, codes := range aliases {
		if len(codes) == 0 {
			continue
		}
		name := pickDescriptor(codes)
		table[base] = name
		table[base+variationSelector] = name
	}

	// 同一位置多个匹配时 strings.Replacer 取靠前的一对，因此较长的序列（ZWJ 组合、旗帜、键帽）排在前面。
	glyphs := make([]string, 0, len(table))
	for glyph := range table {
		glyphs = append(glyphs, glyph)
	}
	sort.Slice(glyphs, func(i, j int) bool {
		if len(glyphs[i]) != len(glyphs[j]) {
			return len(glyphs[i]) > len(glyphs[j])
		}
		return glyphs[i] < glyphs[j]
	})

	pairs := make([]string, 0, len(glyphs)*2)
	for _, glyph := range glyphs {
		pairs = append(pairs, glyph, table[glyph])
	}
	return strings.NewReplacer(pairs...)
}

// pickDescriptor 选择最长的别名，即 CLDR 风格的名字（":smiling_face_with_smiling_eyes:" 而非 ":blush:"）。
func pickDescriptor(codes []string) string {
	best := codes[0]
	for _, code := range codes[1:] {
		if len(code) > len(best) || (len(code) == len(best) && code < best) {
			best = code
		}
	}
	return best
}
