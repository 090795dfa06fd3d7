package timeline

import "github.com/decker502/birthdaycard/pkg/utils"

// ObjectPose 单个场景对象的位姿
type ObjectPose struct {
	Position utils.Vec3
	Rotation utils.Vec3 // 欧拉角（弧度）
	Visible  bool
}

// Poses 三个受控对象的位姿
// 蛋糕始终可见；桌子不控制可见性（始终可见）
type Poses struct {
	Cake   ObjectPose
	Table  ObjectPose
	Candle ObjectPose
}
