package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// 烟花调色板
var fireworkPalette = []utils.RGB{
	{R: 255, G: 90, B: 120},
	{R: 255, G: 200, B: 80},
	{R: 120, G: 220, B: 255},
	{R: 180, G: 120, B: 255},
	{R: 140, G: 255, B: 160},
}

// 烟花爆炸区域（世界坐标，蛋糕上方）
const (
	burstMinX = -3.0
	burstMaxX = 3.0
	burstMinY = 3.5
	burstMaxY = 5.0
	burstMinZ = -1.5
	burstMaxZ = 0.5

	sparkMinSize = 1.5
	sparkMaxSize = 2.8
)

// FireworkSystem 发射烟花并模拟火花（重力、阻力、渐隐）
type FireworkSystem struct {
	entityManager *ecs.EntityManager
	config        config.FireworksConfig
	rng           *rand.Rand
}

// NewFireworkSystem 创建烟花系统；seed 固定时烟花形态可复现
func NewFireworkSystem(em *ecs.EntityManager, cfg config.FireworksConfig, seed int64) *FireworkSystem {
	return &FireworkSystem{
		entityManager: em,
		config:        cfg,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// Launch 安排一次完整的烟花表演
func (s *FireworkSystem) Launch() {
	if s.config.Bursts <= 0 {
		return
	}
	entities.NewFireworkLauncher(s.entityManager, s.config.Bursts, s.config.LaunchInterval)
	log.Printf("[FireworkSystem] launch %d bursts", s.config.Bursts)
}

// Update 推进发射计划和所有火花
func (s *FireworkSystem) Update(dt float64) {
	s.updateLaunchers(dt)
	s.updateParticles(dt)
	s.entityManager.RemoveMarkedEntities()
}

// ActiveParticles 当前存活的火花数量
func (s *FireworkSystem) ActiveParticles() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager))
}

// PendingBursts 尚未发射的烟花数量
func (s *FireworkSystem) PendingBursts() int {
	total := 0
	for _, id := range ecs.GetEntitiesWith1[*components.FireworkLauncherComponent](s.entityManager) {
		launcher, _ := ecs.GetComponent[*components.FireworkLauncherComponent](s.entityManager, id)
		total += launcher.Remaining
	}
	return total
}

func (s *FireworkSystem) updateLaunchers(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FireworkLauncherComponent](s.entityManager) {
		launcher, _ := ecs.GetComponent[*components.FireworkLauncherComponent](s.entityManager, id)

		launcher.NextLaunch -= dt
		for launcher.Remaining > 0 && launcher.NextLaunch <= 0 {
			s.burst()
			launcher.Remaining--
			launcher.NextLaunch += launcher.Interval
		}

		if launcher.Remaining <= 0 {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// burst 在随机位置生成一圈火花
func (s *FireworkSystem) burst() {
	center := utils.Vec3{
		X: s.between(burstMinX, burstMaxX),
		Y: s.between(burstMinY, burstMaxY),
		Z: s.between(burstMinZ, burstMaxZ),
	}
	color := fireworkPalette[s.rng.Intn(len(fireworkPalette))]

	n := s.config.ParticlesPerBurst
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		phi := math.Acos(s.between(-1, 1))
		speed := s.config.Speed * s.between(0.7, 1.0)

		vel := utils.Vec3{
			X: speed * math.Cos(theta) * math.Sin(phi),
			Y: speed * math.Cos(phi),
			Z: speed * math.Sin(theta) * math.Sin(phi),
		}
		lifetime := s.config.Lifetime * s.between(0.75, 1.0)
		entities.NewFireworkParticle(s.entityManager, center, vel, color, s.between(sparkMinSize, sparkMaxSize), lifetime)
	}
}

func (s *FireworkSystem) updateParticles(dt float64) {
	// 阻力表示每秒保留的速度比例
	damping := math.Pow(s.config.Drag, dt)

	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)

		p.Age += dt
		if p.Age >= p.Lifetime {
			s.entityManager.DestroyEntity(id)
			continue
		}

		p.Velocity.X *= damping
		p.Velocity.Y = p.Velocity.Y*damping - s.config.Gravity*dt
		p.Velocity.Z *= damping
		p.Position.X += p.Velocity.X * dt
		p.Position.Y += p.Velocity.Y * dt
		p.Position.Z += p.Velocity.Z * dt

		p.Alpha = 1 - utils.EaseInQuad(p.Age/p.Lifetime)
	}
}

func (s *FireworkSystem) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
