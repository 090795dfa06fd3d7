package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace 返回内置的位图字体（7x13），不依赖任何字体文件
func DefaultFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字形簇强制断行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measureTextWidth(candidate, face) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}

		// 单词本身就超宽：按字形簇拆开
		if measureTextWidth(word, face) > maxWidth {
			parts := breakWord(word, face, maxWidth)
			lines = append(lines, parts[:len(parts)-1]...)
			current = parts[len(parts)-1]
			continue
		}
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord 把超宽的单词按字形簇拆成多段
func breakWord(word string, face text.Face, maxWidth float64) []string {
	var parts []string
	current := ""

	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cluster := g.Str()
		if current != "" && measureTextWidth(current+cluster, face) > maxWidth {
			parts = append(parts, current)
			current = ""
		}
		current += cluster
	}
	return append(parts, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
