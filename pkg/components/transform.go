package components

import "github.com/decker502/birthdaycard/pkg/utils"

// TransformComponent 场景对象在世界坐标中的位姿
// 开场动画期间由 AnimationTimelineSystem 独占写入
type TransformComponent struct {
	Position utils.Vec3
	Rotation utils.Vec3 // 欧拉角（弧度），目前只使用 Y 轴
	Visible  bool
}
