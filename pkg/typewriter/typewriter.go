// Package typewriter 实现逐字显示的文字序列状态机。
//
// 状态流转：typing(line, char) → linesComplete →（StartDelay 之后）→ sceneStarted。
// 开场文字和"相机故障"终端共用同一个状态机，只是参数不同。
//
// Sequencer 本身不可变，所有进度保存在调用方持有的 State 中；
// Step 是纯函数 (state, now) -> (state, effects)，由外部调度器按时钟驱动，
// 不存在递归定时器，重置时只需丢弃 State 即可保证不会有过期回调。
package typewriter

import (
	"strings"

	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/rivo/uniseg"
)

// Phase 序列所处阶段
type Phase int

const (
	// PhaseIdle 尚未开始（或已重置）
	PhaseIdle Phase = iota
	// PhaseTyping 正在逐字显示
	PhaseTyping
	// PhaseLinesComplete 所有行已显示完，等待 StartDelay
	PhaseLinesComplete
	// PhaseSceneStarted 已触发场景开始
	PhaseSceneStarted
)

// String 返回 Phase 的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseTyping:
		return "Typing"
	case PhaseLinesComplete:
		return "LinesComplete"
	case PhaseSceneStarted:
		return "SceneStarted"
	default:
		return "Unknown"
	}
}

// EffectKind 副作用类型
type EffectKind int

const (
	// EffectTypeSound 显示了一个字符，播放打字音
	EffectTypeSound EffectKind = iota
	// EffectLinesComplete 所有行显示完毕
	EffectLinesComplete
	// EffectSceneStart 等待结束，开始场景
	EffectSceneStart
)

// Effect Step 产生的副作用，由调用方执行
type Effect struct {
	Kind EffectKind
	Line int
	Char int
	At   float64 // 副作用在时钟上的发生时刻
}

// Config 状态机参数（时间单位：秒）
type Config struct {
	Lines            []string
	CharDelay        float64
	LineDelays       []float64 // 第 i 行开始前的等待时间
	DefaultLineDelay float64   // 超出 LineDelays 范围时使用
	StartDelay       float64   // 全部显示完到触发场景开始的等待时间
	SkipEmptyLines   bool
}

// FromSequenceConfig 从文案配置构造参数（总是跳过空行）
func FromSequenceConfig(c config.SequenceConfig) Config {
	return Config{
		Lines:            c.Lines,
		CharDelay:        c.CharDelay,
		LineDelays:       c.LineDelays,
		DefaultLineDelay: c.DefaultLineDelay,
		StartDelay:       c.StartDelay,
		SkipEmptyLines:   true,
	}
}

// State 序列进度
type State struct {
	Phase     Phase
	LineIndex int
	CharIndex int // 当前行已显示的字形簇数量

	// 下一次推进的时钟时刻；HasDeadline=false 表示没有待执行的推进
	NextAt      float64
	HasDeadline bool
}

// Sequencer 逐字显示状态机
type Sequencer struct {
	cfg    Config
	glyphs [][]string // 每行拆分成字形簇，避免把多字节字符或组合字符拆开
}

// New 创建状态机
func New(cfg Config) *Sequencer {
	glyphs := make([][]string, len(cfg.Lines))
	for i, line := range cfg.Lines {
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			glyphs[i] = append(glyphs[i], g.Str())
		}
	}
	return &Sequencer{cfg: cfg, glyphs: glyphs}
}

// LineCount 返回配置的行数
func (q *Sequencer) LineCount() int {
	return len(q.glyphs)
}

// Start 从 now 开始一个新序列
func (q *Sequencer) Start(now float64) State {
	first := q.nextLine(0)
	return State{
		Phase:       PhaseTyping,
		LineIndex:   first,
		NextAt:      now + q.lineDelay(first),
		HasDeadline: true,
	}
}

// Reset 返回空闲状态，丢弃所有待执行的推进
func (q *Sequencer) Reset() State {
	return State{}
}

// Skip 立即显示全部文字，下一次 Step 即触发场景开始
func (q *Sequencer) Skip(st State, now float64) State {
	if st.Phase == PhaseSceneStarted {
		return st
	}
	return State{
		Phase:       PhaseLinesComplete,
		LineIndex:   len(q.glyphs),
		NextAt:      now,
		HasDeadline: true,
	}
}

// Step 推进到 now 为止所有到期的步骤
//
// 每一步都以上一步的到期时刻为基准安排下一步，
// 因此结果只取决于时间戳，与调用频率无关。
func (q *Sequencer) Step(st State, now float64) (State, []Effect) {
	var effects []Effect
	for st.HasDeadline && now >= st.NextAt {
		q.advance(&st, st.NextAt, &effects)
	}
	return st, effects
}

func (q *Sequencer) advance(st *State, at float64, effects *[]Effect) {
	switch st.Phase {
	case PhaseTyping:
		if st.LineIndex < len(q.glyphs) && st.CharIndex < len(q.glyphs[st.LineIndex]) {
			st.CharIndex++
			*effects = append(*effects, Effect{Kind: EffectTypeSound, Line: st.LineIndex, Char: st.CharIndex, At: at})
			st.NextAt = at + q.cfg.CharDelay
			return
		}

		if next := q.nextLine(st.LineIndex + 1); next < len(q.glyphs) {
			st.LineIndex = next
			st.CharIndex = 0
			st.NextAt = at + q.lineDelay(next)
			return
		}

		st.Phase = PhaseLinesComplete
		st.LineIndex = len(q.glyphs)
		st.CharIndex = 0
		st.NextAt = at + q.cfg.StartDelay
		*effects = append(*effects, Effect{Kind: EffectLinesComplete, At: at})

	case PhaseLinesComplete:
		st.Phase = PhaseSceneStarted
		st.HasDeadline = false
		*effects = append(*effects, Effect{Kind: EffectSceneStart, At: at})

	default:
		st.HasDeadline = false
	}
}

// nextLine 返回从 from 开始第一个需要显示的行（跳过空行时忽略零长度行）
func (q *Sequencer) nextLine(from int) int {
	i := from
	if q.cfg.SkipEmptyLines {
		for i < len(q.glyphs) && len(q.glyphs[i]) == 0 {
			i++
		}
	}
	return i
}

// lineDelay 第 i 行开始前的等待；超出延迟表时使用默认值
func (q *Sequencer) lineDelay(i int) float64 {
	if i >= 0 && i < len(q.cfg.LineDelays) {
		return q.cfg.LineDelays[i]
	}
	return q.cfg.DefaultLineDelay
}

// VisibleLines 返回当前每行可见的文字
// 没有任何可显示内容时返回一个空占位行
func (q *Sequencer) VisibleLines(st State) []string {
	if len(q.glyphs) == 0 || st.Phase == PhaseIdle {
		return []string{""}
	}

	if st.Phase != PhaseTyping || st.LineIndex >= len(q.glyphs) {
		out := make([]string, len(q.glyphs))
		copy(out, q.cfg.Lines)
		return out
	}

	out := make([]string, st.LineIndex+1)
	copy(out, q.cfg.Lines[:st.LineIndex])
	out[st.LineIndex] = strings.Join(q.glyphs[st.LineIndex][:st.CharIndex], "")
	return out
}

// CursorLine 光标所在行：打字时为当前行，否则为最后一个渲染的行
func (q *Sequencer) CursorLine(st State) int {
	if st.Phase == PhaseTyping && st.LineIndex < len(q.glyphs) {
		return st.LineIndex
	}
	return len(q.VisibleLines(st)) - 1
}

// TypingComplete 所有行是否已显示完
func (q *Sequencer) TypingComplete(st State) bool {
	return st.Phase == PhaseLinesComplete || st.Phase == PhaseSceneStarted
}

// CursorVisible 光标闪烁：每 interval 秒切换一次
func CursorVisible(now, interval float64) bool {
	if interval <= 0 {
		return true
	}
	return int(now/interval)%2 == 0
}
