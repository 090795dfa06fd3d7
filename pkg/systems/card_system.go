package systems

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
)

// 卡片弹簧参数：轻微过冲，约 0.4 秒稳定
const (
	cardSpringFrequency = 7.0
	cardSpringDamping   = 0.6
	cardSettleEpsilon   = 0.001
)

// CardSystem 照片卡片的展开/收起动画
// 每个 tick 调用一次（弹簧按 60 TPS 预计算系数）
type CardSystem struct {
	entityManager *ecs.EntityManager
	spring        harmonica.Spring
}

// NewCardSystem 创建卡片系统
func NewCardSystem(em *ecs.EntityManager) *CardSystem {
	return &CardSystem{
		entityManager: em,
		spring:        harmonica.NewSpring(harmonica.FPS(60), cardSpringFrequency, cardSpringDamping),
	}
}

// SetOpen 展开或收起卡片
func (s *CardSystem) SetOpen(open bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.PhotoCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.PhotoCardComponent](s.entityManager, id)
		if card.Open != open {
			card.Open = open
			card.Settled = false
		}
	}
}

// Update 推进弹簧
func (s *CardSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.PhotoCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.PhotoCardComponent](s.entityManager, id)
		if card.Settled {
			continue
		}

		target := 0.0
		if card.Open {
			target = 1
		}

		card.Scale, card.Velocity = s.spring.Update(card.Scale, card.Velocity, target)
		if math.Abs(card.Scale-target) < cardSettleEpsilon && math.Abs(card.Velocity) < cardSettleEpsilon {
			card.Scale = target
			card.Velocity = 0
			card.Settled = true
		}
	}
}
