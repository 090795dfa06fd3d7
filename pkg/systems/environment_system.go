package systems

import (
	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// EnvironmentSystem 时间轴派生信号的消费者
// 把背景透明度写入遮罩，把环境进度换算成环境光强度和天空颜色
type EnvironmentSystem struct {
	entityManager *ecs.EntityManager
	lighting      config.LightingConfig
}

// NewEnvironmentSystem 创建环境系统
func NewEnvironmentSystem(em *ecs.EntityManager, lighting config.LightingConfig) *EnvironmentSystem {
	return &EnvironmentSystem{
		entityManager: em,
		lighting:      lighting,
	}
}

// OnBackgroundOpacityChange 更新遮罩透明度
func (s *EnvironmentSystem) OnBackgroundOpacityChange(opacity float64) {
	opacity = utils.Clamp01(opacity)
	for _, id := range ecs.GetEntitiesWith1[*components.BackgroundFadeComponent](s.entityManager) {
		fade, _ := ecs.GetComponent[*components.BackgroundFadeComponent](s.entityManager, id)
		fade.Opacity = opacity
	}
}

// OnEnvironmentProgressChange 更新环境光
func (s *EnvironmentSystem) OnEnvironmentProgressChange(progress float64) {
	progress = utils.Clamp01(progress)
	for _, id := range ecs.GetEntitiesWith1[*components.EnvironmentLightComponent](s.entityManager) {
		light, _ := ecs.GetComponent[*components.EnvironmentLightComponent](s.entityManager, id)
		light.Progress = progress
		light.Intensity = utils.Lerp(s.lighting.MinIntensity, s.lighting.MaxIntensity, progress)
		light.Sky = utils.LerpColor(s.lighting.SkyFrom, s.lighting.SkyTo, progress)
	}
}
