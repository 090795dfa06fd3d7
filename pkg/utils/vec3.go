package utils

import "image/color"

// Vec3 三维向量（世界坐标，右手系，Y 轴向上）
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// LerpVec3 分量插值
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// RGB 配置文件中使用的颜色
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA 转换为 color.RGBA（不透明）
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// LerpColor 在两个颜色之间插值
func LerpColor(a, b RGB, t float64) color.RGBA {
	t = Clamp01(t)
	return color.RGBA{
		R: uint8(Lerp(float64(a.R), float64(b.R), t) + 0.5),
		G: uint8(Lerp(float64(a.G), float64(b.G), t) + 0.5),
		B: uint8(Lerp(float64(a.B), float64(b.B), t) + 0.5),
		A: 0xff,
	}
}

// ScaleColor 按光照强度缩放颜色（intensity 限制在 [0, 1]）
func ScaleColor(c RGB, intensity float64) color.RGBA {
	k := Clamp01(intensity)
	return color.RGBA{
		R: uint8(float64(c.R)*k + 0.5),
		G: uint8(float64(c.G)*k + 0.5),
		B: uint8(float64(c.B)*k + 0.5),
		A: 0xff,
	}
}
