// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyActions 一帧内触发的交互动作
// 由 ReadKeyActions 从键盘/触摸采样，交互系统只依赖这个结构，便于在没有窗口的情况下测试
type KeyActions struct {
	Confirm      bool // Space / Enter / 点击：开始播放或跳过开场
	TogglePause  bool // P
	BlowCandle   bool // B
	Fireworks    bool // F
	ToggleCard   bool // C
	OpenTerminal bool // K
	Close        bool // Esc
}

// Any 是否有任何动作被触发
func (a KeyActions) Any() bool {
	return a.Confirm || a.TogglePause || a.BlowCandle || a.Fireworks ||
		a.ToggleCard || a.OpenTerminal || a.Close
}

// ReadKeyActions 采样本帧刚按下的按键
func ReadKeyActions() KeyActions {
	tapped, _, _ := IsJustTouchedOrClicked()
	return KeyActions{
		Confirm:      tapped || inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		TogglePause:  inpututil.IsKeyJustPressed(ebiten.KeyP),
		BlowCandle:   inpututil.IsKeyJustPressed(ebiten.KeyB),
		Fireworks:    inpututil.IsKeyJustPressed(ebiten.KeyF),
		ToggleCard:   inpututil.IsKeyJustPressed(ebiten.KeyC),
		OpenTerminal: inpututil.IsKeyJustPressed(ebiten.KeyK),
		Close:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
