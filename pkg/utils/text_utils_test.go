package utils

import (
	"reflect"
	"testing"
)

// TestWrapText 使用内置 7x13 位图字体（每个字符 7 像素宽）
func TestWrapText(t *testing.T) {
	face := DefaultFace()

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"短文本不换行", "Make a wish.", 200, []string{"Make a wish."}},
		{"按空格换行", "Here's to another great year", 70, []string{"Here's to", "another", "great year"}},
		{"超长单词强制断行", "abcdefghijkl", 35, []string{"abcde", "fghij", "kl"}},
		{"空字符串", "", 100, []string{""}},
		{"非法宽度", "hello", 0, []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, face, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %.0f) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

// TestWrapTextLinesFit 换行后每一行都不超过最大宽度
func TestWrapTextLinesFit(t *testing.T) {
	face := DefaultFace()
	input := "The quick brown fox jumps over the lazy dog and keeps running"

	for _, line := range WrapText(input, face, 100) {
		if w := measureTextWidth(line, face); w > 100 {
			t.Errorf("line %q is %.0fpx wide, exceeds 100", line, w)
		}
	}
}
