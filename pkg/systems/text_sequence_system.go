package systems

import (
	"log"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/typewriter"
	"github.com/decker502/birthdaycard/pkg/utils"
)

const (
	// CursorBlinkInterval 光标闪烁半周期（秒）
	CursorBlinkInterval = 0.5
	// HintFadeInDuration 提示文字淡入时长（秒）
	HintFadeInDuration = 0.8
)

// SoundPlayer 播放音效的协作者（失败时返回 false，调用方忽略即可）
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// TextSequenceSystem 用场景时钟驱动所有文字序列
// 负责把副作用转换成打字音和回调，并维护光标闪烁和提示文字淡入
type TextSequenceSystem struct {
	entityManager *ecs.EntityManager
	audio         SoundPlayer
	onSceneStart  map[components.TextSequenceKind]func()
}

// NewTextSequenceSystem 创建文字序列系统，audio 可为 nil
func NewTextSequenceSystem(em *ecs.EntityManager, audio SoundPlayer) *TextSequenceSystem {
	return &TextSequenceSystem{
		entityManager: em,
		audio:         audio,
		onSceneStart:  make(map[components.TextSequenceKind]func()),
	}
}

// SetOnSceneStart 设置某个序列结束等待后的回调
func (s *TextSequenceSystem) SetOnSceneStart(kind components.TextSequenceKind, fn func()) {
	s.onSceneStart[kind] = fn
}

// Start 从 now 开始播放序列并显示
func (s *TextSequenceSystem) Start(kind components.TextSequenceKind, now float64) {
	if seq := s.find(kind); seq != nil {
		seq.State = seq.Sequencer.Start(now)
		seq.Visible = true
		log.Printf("[TextSequenceSystem] start %v at %.2fs (%d lines)", kind, now, seq.Sequencer.LineCount())
	}
}

// Skip 立即显示全部文字，下一次 Update 触发场景开始回调
func (s *TextSequenceSystem) Skip(kind components.TextSequenceKind, now float64) {
	if seq := s.find(kind); seq != nil {
		seq.State = seq.Sequencer.Skip(seq.State, now)
	}
}

// Reset 停止并隐藏序列，丢弃所有待执行的推进
func (s *TextSequenceSystem) Reset(kind components.TextSequenceKind) {
	if seq := s.find(kind); seq != nil {
		seq.State = seq.Sequencer.Reset()
		seq.Visible = false
		seq.CursorOn = false
	}
}

// Hide 隐藏序列但保留进度
func (s *TextSequenceSystem) Hide(kind components.TextSequenceKind) {
	if seq := s.find(kind); seq != nil {
		seq.Visible = false
	}
}

// ShowHint 显示操作提示（从 now 开始淡入）
func (s *TextSequenceSystem) ShowHint(now float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.HintTextComponent](s.entityManager) {
		hint, _ := ecs.GetComponent[*components.HintTextComponent](s.entityManager, id)
		if !hint.Visible {
			hint.Visible = true
			hint.ShownAt = now
			hint.Alpha = 0
		}
	}
}

// Update 推进所有序列
func (s *TextSequenceSystem) Update(now float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextSequenceComponent](s.entityManager) {
		seq, _ := ecs.GetComponent[*components.TextSequenceComponent](s.entityManager, id)
		if seq.State.Phase == typewriter.PhaseIdle {
			seq.CursorOn = false
			continue
		}

		var effects []typewriter.Effect
		seq.State, effects = seq.Sequencer.Step(seq.State, now)
		seq.CursorOn = typewriter.CursorVisible(now, CursorBlinkInterval)
		s.handleEffects(seq.Kind, effects)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.HintTextComponent](s.entityManager) {
		hint, _ := ecs.GetComponent[*components.HintTextComponent](s.entityManager, id)
		if hint.Visible {
			hint.Alpha = utils.Clamp01((now - hint.ShownAt) / HintFadeInDuration)
		}
	}
}

func (s *TextSequenceSystem) handleEffects(kind components.TextSequenceKind, effects []typewriter.Effect) {
	clicked := false
	for _, e := range effects {
		switch e.Kind {
		case typewriter.EffectTypeSound:
			// 一帧内追赶多个字符时只响一次
			if !clicked && s.audio != nil {
				s.audio.PlaySound(game.SoundTypeClick)
			}
			clicked = true
		case typewriter.EffectLinesComplete:
			log.Printf("[TextSequenceSystem] %v lines complete at %.2fs", kind, e.At)
		case typewriter.EffectSceneStart:
			log.Printf("[TextSequenceSystem] %v scene start at %.2fs", kind, e.At)
			if fn := s.onSceneStart[kind]; fn != nil {
				fn()
			}
		}
	}
}

// Sequence 返回指定类型的序列组件，不存在时返回 nil
func (s *TextSequenceSystem) Sequence(kind components.TextSequenceKind) *components.TextSequenceComponent {
	return s.find(kind)
}

func (s *TextSequenceSystem) find(kind components.TextSequenceKind) *components.TextSequenceComponent {
	for _, id := range ecs.GetEntitiesWith1[*components.TextSequenceComponent](s.entityManager) {
		seq, _ := ecs.GetComponent[*components.TextSequenceComponent](s.entityManager, id)
		if seq.Kind == kind {
			return seq
		}
	}
	return nil
}
