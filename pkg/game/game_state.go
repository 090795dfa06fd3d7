package game

// ScenePhase 贺卡场景的大阶段
type ScenePhase int

const (
	// PhaseIntro 开场打字阶段（黑屏文字）
	PhaseIntro ScenePhase = iota
	// PhaseAnimating 时间轴动画阶段（包括暂停）
	PhaseAnimating
	// PhaseFinished 动画已完成，可以互动
	PhaseFinished
)

// String 返回阶段名称
func (p ScenePhase) String() string {
	switch p {
	case PhaseIntro:
		return "Intro"
	case PhaseAnimating:
		return "Animating"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// SceneState 存储贺卡场景的交互状态
// 由场景持有，交互系统读写，时间轴只读取 IsPlaying
type SceneState struct {
	Phase ScenePhase

	// IsPlaying 时间轴是否处于播放状态（P 键切换）
	IsPlaying bool

	// AnimationDone 时间轴完成回调已触发
	AnimationDone bool

	CandleLit    bool
	CardOpen     bool
	TerminalOpen bool
	HintVisible  bool
}

// NewSceneState 返回初始状态：开场阶段，蜡烛点燃
func NewSceneState() *SceneState {
	return &SceneState{
		Phase:     PhaseIntro,
		CandleLit: true,
	}
}

// StartPlayback 从开场阶段进入动画阶段
// 已经开始过则返回 false
func (s *SceneState) StartPlayback() bool {
	if s.Phase != PhaseIntro {
		return false
	}
	s.Phase = PhaseAnimating
	s.IsPlaying = true
	return true
}

// TogglePause 切换播放/暂停，开场阶段无效
// 返回切换后的播放状态
func (s *SceneState) TogglePause() bool {
	if s.Phase == PhaseIntro {
		return s.IsPlaying
	}
	s.IsPlaying = !s.IsPlaying
	return s.IsPlaying
}

// MarkAnimationDone 时间轴完成：进入可互动阶段并显示提示
func (s *SceneState) MarkAnimationDone() {
	s.AnimationDone = true
	s.Phase = PhaseFinished
	s.HintVisible = true
}

// ToggleCandle 吹灭/重新点燃蜡烛，只在动画完成后有效
// 返回 changed=false 表示本次操作被忽略
func (s *SceneState) ToggleCandle() (lit bool, changed bool) {
	if !s.AnimationDone {
		return s.CandleLit, false
	}
	s.CandleLit = !s.CandleLit
	return s.CandleLit, true
}

// ToggleCard 打开/关闭照片卡片（与终端互斥）
func (s *SceneState) ToggleCard() bool {
	s.CardOpen = !s.CardOpen
	if s.CardOpen {
		s.TerminalOpen = false
	}
	return s.CardOpen
}

// OpenTerminal 打开"相机故障"终端（与卡片互斥）
// 已经打开时返回 false
func (s *SceneState) OpenTerminal() bool {
	if s.TerminalOpen {
		return false
	}
	s.TerminalOpen = true
	s.CardOpen = false
	return true
}

// CloseOverlays 关闭所有浮层，返回是否有浮层被关闭
func (s *SceneState) CloseOverlays() (cardClosed, terminalClosed bool) {
	cardClosed, terminalClosed = s.CardOpen, s.TerminalOpen
	s.CardOpen = false
	s.TerminalOpen = false
	return cardClosed, terminalClosed
}

// HasOverlay 当前是否有浮层打开
func (s *SceneState) HasOverlay() bool {
	return s.CardOpen || s.TerminalOpen
}
