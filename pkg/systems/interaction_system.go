package systems

import (
	"log"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// AudioController 交互层使用的音频协作者
// 所有操作都允许失败（静默），不影响动画
type AudioController interface {
	SoundPlayer
	PlayMusic(musicID string, fadeIn float64) bool
	FadeOutMusic(duration float64)
	PauseMusic()
	ResumeMusic()
}

// InteractionSystem 把按键动作翻译成场景状态变化
//
// 开场阶段：确认键跳过/结束开场文字并开始动画。
// 动画阶段：P 暂停/继续。
// 完成之后：B 吹灭/点燃蜡烛（吹灭时放烟花），F 放烟花，C 卡片，K 终端，Esc 关闭浮层。
type InteractionSystem struct {
	state     *game.SceneState
	text      *TextSequenceSystem
	fireworks *FireworkSystem
	card      *CardSystem
	candles   *CandleSystem
	audio     AudioController
	audioCfg  config.AudioConfig

	now float64
}

// NewInteractionSystem 创建交互系统，audio 可为 nil
func NewInteractionSystem(
	state *game.SceneState,
	text *TextSequenceSystem,
	fireworks *FireworkSystem,
	card *CardSystem,
	candles *CandleSystem,
	audio AudioController,
	audioCfg config.AudioConfig,
) *InteractionSystem {
	return &InteractionSystem{
		state:     state,
		text:      text,
		fireworks: fireworks,
		card:      card,
		candles:   candles,
		audio:     audio,
		audioCfg:  audioCfg,
	}
}

// Update 处理本帧的动作
func (s *InteractionSystem) Update(actions utils.KeyActions, now float64) {
	s.now = now
	if !actions.Any() {
		return
	}

	if actions.Confirm {
		s.handleConfirm()
	}
	if actions.TogglePause {
		s.handleTogglePause()
	}
	if actions.BlowCandle {
		s.handleBlowCandle()
	}
	if actions.Fireworks && s.state.Phase != game.PhaseIntro {
		s.fireworks.Launch()
	}
	if actions.ToggleCard {
		s.handleToggleCard()
	}
	if actions.OpenTerminal && s.state.OpenTerminal() {
		s.card.SetOpen(false)
		s.text.Start(components.TextSequenceTerminal, now)
	}
	if actions.Close {
		s.handleClose()
	}
}

// OnIntroFinished 开场文字结束（正常播放完或被跳过）后开始动画
func (s *InteractionSystem) OnIntroFinished() {
	s.text.Hide(components.TextSequenceIntro)
	if s.state.StartPlayback() {
		log.Printf("[InteractionSystem] playback started at %.2fs", s.now)
	}
}

// OnAnimationComplete 时间轴完成回调：显示提示并淡入背景音乐
func (s *InteractionSystem) OnAnimationComplete() {
	s.state.MarkAnimationDone()
	s.text.ShowHint(s.now)
	if s.audio != nil {
		s.audio.PlayMusic(game.MusicBirthday, s.audioCfg.MusicFadeIn)
	}
}

// SetNow 更新交互系统使用的时钟值（回调中使用）
func (s *InteractionSystem) SetNow(now float64) {
	s.now = now
}

func (s *InteractionSystem) handleConfirm() {
	if s.state.Phase != game.PhaseIntro {
		return
	}
	// 打字中按下则跳过；已打完则不再等待 StartDelay
	s.text.Skip(components.TextSequenceIntro, s.now)
}

func (s *InteractionSystem) handleTogglePause() {
	if s.state.Phase == game.PhaseIntro {
		return
	}

	playing := s.state.TogglePause()
	log.Printf("[InteractionSystem] playing=%v", playing)
	if s.audio == nil {
		return
	}
	if playing {
		s.audio.ResumeMusic()
	} else {
		s.audio.PauseMusic()
	}
}

func (s *InteractionSystem) handleBlowCandle() {
	lit, changed := s.state.ToggleCandle()
	if !changed {
		return
	}

	s.candles.SetLit(lit)
	if !lit {
		log.Printf("[InteractionSystem] candle blown out")
		s.fireworks.Launch()
	}
}

func (s *InteractionSystem) handleToggleCard() {
	terminalWasOpen := s.state.TerminalOpen
	open := s.state.ToggleCard()
	s.card.SetOpen(open)
	if terminalWasOpen && !s.state.TerminalOpen {
		s.text.Reset(components.TextSequenceTerminal)
	}
}

func (s *InteractionSystem) handleClose() {
	cardClosed, terminalClosed := s.state.CloseOverlays()
	if cardClosed {
		s.card.SetOpen(false)
	}
	if terminalClosed {
		s.text.Reset(components.TextSequenceTerminal)
	}
}
