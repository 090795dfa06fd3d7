package systems

import (
	"math"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
)

// 火焰闪烁参数
const (
	flameFlickerSpeed = 9.0  // 相位速度（弧度/秒）
	flameFlickerDepth = 0.1  // 主频振幅
	flameJitterDepth  = 0.05 // 次频振幅
)

// CandleSystem 管理蜡烛火焰：点燃时闪烁，吹灭时隐藏
type CandleSystem struct {
	entityManager *ecs.EntityManager
}

// NewCandleSystem 创建蜡烛系统
func NewCandleSystem(em *ecs.EntityManager) *CandleSystem {
	return &CandleSystem{entityManager: em}
}

// SetLit 点燃或吹灭所有蜡烛
func (s *CandleSystem) SetLit(lit bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.CandleComponent](s.entityManager) {
		candle, _ := ecs.GetComponent[*components.CandleComponent](s.entityManager, id)
		candle.Lit = lit
		if lit {
			candle.FlickerPhase = 0
			candle.Flicker = 1
		} else {
			candle.Flicker = 0
		}
	}
}

// Update 推进火焰闪烁
func (s *CandleSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CandleComponent](s.entityManager) {
		candle, _ := ecs.GetComponent[*components.CandleComponent](s.entityManager, id)
		if !candle.Lit {
			candle.Flicker = 0
			continue
		}

		candle.FlickerPhase = math.Mod(candle.FlickerPhase+dt*flameFlickerSpeed, 2*math.Pi*10)
		candle.Flicker = 1 +
			flameFlickerDepth*math.Sin(candle.FlickerPhase) +
			flameJitterDepth*math.Sin(candle.FlickerPhase*2.7)
	}
}
