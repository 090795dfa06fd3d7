package components

import "github.com/decker502/birthdaycard/pkg/utils"

// ParticleComponent represents a single firework spark.
// It stores the runtime state of the particle; FireworkSystem integrates it
// each frame and destroys the entity when its lifetime expires.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Position (世界坐标)
	Position utils.Vec3
	// Velocity (世界单位/秒)
	Velocity utils.Vec3

	Color utils.RGB
	Alpha float64 // 0 = 完全透明，1 = 不透明
	Size  float64 // 屏幕像素半径

	// Lifecycle (生命周期, 秒)
	Age      float64
	Lifetime float64
}

// FireworkLauncherComponent 一次烟花表演的发射计划
type FireworkLauncherComponent struct {
	Remaining  int     // 剩余待发射的烟花数
	NextLaunch float64 // 距离下一次发射的时间（秒）
	Interval   float64
}
