package components

import "github.com/decker502/birthdaycard/pkg/utils"

// ObjectKind 受时间轴控制的场景对象类型
type ObjectKind int

const (
	KindCake ObjectKind = iota
	KindTable
	KindCandle
)

// String 返回对象类型名称
func (k ObjectKind) String() string {
	switch k {
	case KindCake:
		return "cake"
	case KindTable:
		return "table"
	case KindCandle:
		return "candle"
	default:
		return "unknown"
	}
}

// SceneObjectComponent 标识实体是哪一个场景对象，并携带绘制用的尺寸和颜色
//
// Size 的含义：X 为半径（圆柱）或半宽（桌面），Y 为高度，Z 为半深
type SceneObjectComponent struct {
	Kind  ObjectKind
	Size  utils.Vec3
	Color utils.RGB
	Trim  utils.RGB // 奶油边、桌布边等装饰色
}

// CandleComponent 蜡烛火焰状态
type CandleComponent struct {
	Lit bool

	// 火焰闪烁
	FlameHeight  float64 // 火焰基准高度（世界单位）
	FlickerPhase float64 // 闪烁相位（弧度），由 CandleSystem 推进
	Flicker      float64 // 当前高度倍数，约 0.85~1.15
}
