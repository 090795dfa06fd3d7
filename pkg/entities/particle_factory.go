package entities

import (
	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// NewFireworkParticle 创建一颗烟花火花
func NewFireworkParticle(em *ecs.EntityManager, pos, vel utils.Vec3, color utils.RGB, size, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ParticleComponent{
		Position: pos,
		Velocity: vel,
		Color:    color,
		Alpha:    1,
		Size:     size,
		Lifetime: lifetime,
	})
	return id
}

// NewFireworkLauncher 创建烟花发射计划：第一发立即发射，之后每 interval 秒一发
func NewFireworkLauncher(em *ecs.EntityManager, bursts int, interval float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.FireworkLauncherComponent{
		Remaining: bursts,
		Interval:  interval,
	})
	return id
}
