package utils

import (
	"image/color"
	"testing"
)

func TestLerpVec3(t *testing.T) {
	a := Vec3{X: 0, Y: 6, Z: -10}
	b := Vec3{X: 0, Y: 1, Z: 0}

	mid := LerpVec3(a, b, 0.5)
	if mid != (Vec3{X: 0, Y: 3.5, Z: -5}) {
		t.Errorf("LerpVec3 中点错误: %+v", mid)
	}

	if got := a.Add(b); got != (Vec3{X: 0, Y: 7, Z: -10}) {
		t.Errorf("Add 结果错误: %+v", got)
	}
}

func TestColorHelpers(t *testing.T) {
	night := RGB{R: 0, G: 0, B: 0}
	warm := RGB{R: 200, G: 100, B: 50}

	tests := []struct {
		name     string
		t        float64
		expected color.RGBA
	}{
		{"起点", 0, color.RGBA{0, 0, 0, 255}},
		{"终点", 1, color.RGBA{200, 100, 50, 255}},
		{"中点", 0.5, color.RGBA{100, 50, 25, 255}},
		{"超出范围被限制", 3, color.RGBA{200, 100, 50, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LerpColor(night, warm, tt.t); got != tt.expected {
				t.Errorf("LerpColor(t=%v) = %v, 期望 %v", tt.t, got, tt.expected)
			}
		})
	}

	if got := ScaleColor(warm, 0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("ScaleColor(0.5) = %v", got)
	}
	if got := ScaleColor(warm, -1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("ScaleColor(-1) = %v", got)
	}
	if got := warm.RGBA(); got.A != 255 || got.R != 200 {
		t.Errorf("RGBA() = %v", got)
	}
}
