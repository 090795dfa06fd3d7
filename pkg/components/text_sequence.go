package components

import "github.com/decker502/birthdaycard/pkg/typewriter"

// TextSequenceKind 文字序列的用途
type TextSequenceKind int

const (
	// TextSequenceIntro 开场文字
	TextSequenceIntro TextSequenceKind = iota
	// TextSequenceTerminal "相机故障"终端
	TextSequenceTerminal
)

// String 返回序列名称
func (k TextSequenceKind) String() string {
	switch k {
	case TextSequenceIntro:
		return "intro"
	case TextSequenceTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// TextSequenceComponent 一个逐字显示的文字序列
// Sequencer 是不可变的参数，进度保存在 State 中
type TextSequenceComponent struct {
	Kind      TextSequenceKind
	Sequencer *typewriter.Sequencer
	State     typewriter.State

	// CursorOn 光标闪烁的当前状态，由 TextSequenceSystem 更新
	CursorOn bool
	// Visible 是否需要绘制
	Visible bool
}

// HintTextComponent 动画结束后的操作提示
type HintTextComponent struct {
	Text    string
	Visible bool
	ShownAt float64 // 显示时的时钟值
	Alpha   float64 // 淡入进度
}
