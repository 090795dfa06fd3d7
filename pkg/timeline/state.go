package timeline

// State 时间轴的全部可变状态，由控制器的调用方独占持有
//
// 创建于控制器激活时；播放从 true 变为 false 时重置派生信号相关字段；
// 播放到总时长后进入"已完成"终态，直到再次暂停才会被清除。
type State struct {
	IsPlaying bool

	// AnimationStartTime 第一帧播放时的时钟值；HasStartTime=false 表示尚未开始
	AnimationStartTime float64
	HasStartTime       bool

	HasPrimed          bool
	HasCompleted       bool
	CompletionNotified bool

	// 最近一次转发给消费者的信号值
	LastEmittedOpacity             float64
	LastEmittedEnvironmentProgress float64
}

// NewState 返回激活时的初始状态（遮罩全不透明、环境未显现）
func NewState() State {
	return State{
		LastEmittedOpacity:             1,
		LastEmittedEnvironmentProgress: 0,
	}
}
