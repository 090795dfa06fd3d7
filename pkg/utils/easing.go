package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（蛋糕下落、桌子滑入、蜡烛落下都使用它）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快（烟花粒子淡出）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 区间内
// NaN 被视为下界，保证结果始终是可用值
func Clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 区间内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
