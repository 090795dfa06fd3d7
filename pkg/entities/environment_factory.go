package entities

import (
	"fmt"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
)

// NewEnvironmentEntity 创建承载遮罩和环境光的实体
// 初始值对应时间轴激活时的信号：遮罩不透明、环境未显现
func NewEnvironmentEntity(em *ecs.EntityManager, lighting config.LightingConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BackgroundFadeComponent{
		Opacity: 1,
		Color:   lighting.Overlay,
	})
	ecs.AddComponent(em, id, &components.EnvironmentLightComponent{
		Progress:  0,
		Intensity: lighting.MinIntensity,
		Sky:       lighting.SkyFrom.RGBA(),
	})
	return id, nil
}
