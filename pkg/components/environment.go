package components

import (
	"image/color"

	"github.com/decker502/birthdaycard/pkg/utils"
)

// BackgroundFadeComponent 开场黑色遮罩
// Opacity 由时间轴信号驱动：1 = 完全遮挡，0 = 完全透明
type BackgroundFadeComponent struct {
	Opacity float64
	Color   utils.RGB
}

// EnvironmentLightComponent 环境光照
// Progress 由时间轴信号驱动：0 = 黑暗，1 = 完全显现
type EnvironmentLightComponent struct {
	Progress  float64
	Intensity float64    // 环境光强度，MinIntensity ~ MaxIntensity
	Sky       color.RGBA // 当前天空颜色
}
