package timeline

import (
	"math"

	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// Frame 一次 Tick 的计算结果
//
// 调用方按固定顺序应用：先写位姿，再转发信号，最后触发完成回调。
// 这样收到"完成"通知的消费者可以确信最终位姿和信号都已生效。
type Frame struct {
	// Poses 本帧需要写入的位姿；nil 表示本帧不写任何变换
	Poses *Poses

	// Elapsed 限制在 [0, TotalDuration] 内的动画时间（未播放时为 0）
	Elapsed float64

	// Opacity 背景遮罩透明度，Progress 环境显现进度，二者之和恒为 1
	Opacity  float64
	Progress float64

	// EmitSignals 本帧信号是否需要转发给消费者
	EmitSignals bool

	// Completed 时间轴处于已完成状态
	Completed bool

	// NotifyComplete 本帧需要触发一次性完成回调
	NotifyComplete bool
}

// Controller 开场动画时间轴控制器
// 只持有由配置推导出的不可变数据，可在多个 State 之间共享
type Controller struct {
	cfg      config.TimelineConfig
	schedule Schedule

	cakeDrop   Segment
	cakeSpin   Segment
	tableSlide Segment
	candleDrop Segment
	fade       Segment
}

// NewController 根据配置创建控制器
func NewController(cfg config.TimelineConfig) *Controller {
	s := NewSchedule(cfg)
	return &Controller{
		cfg:      cfg,
		schedule: s,

		cakeDrop: Segment{Start: 0, Duration: cfg.CakeDuration, From: cfg.CakeStartY, To: cfg.CakeEndY},
		// 旋转与下落共用同一个进度：落地时恰好转满一圈
		cakeSpin:   Segment{Start: 0, Duration: cfg.CakeDuration, From: 0, To: 2 * math.Pi},
		tableSlide: Segment{Start: s.TableSlideStart, Duration: cfg.TableSlideDuration, From: cfg.TableStartZ, To: cfg.TableEndZ},
		candleDrop: Segment{Start: s.CandleDropStart, Duration: cfg.CandleDropDuration, From: cfg.CandleStartY, To: cfg.CandleEndY},
		fade:       Segment{Start: s.FadeStart, Duration: s.FadeEnd - s.FadeStart, From: 1, To: 0},
	}
}

// Schedule 返回推导出的时间偏移
func (c *Controller) Schedule() Schedule {
	return c.schedule
}

// Config 返回控制器使用的配置
func (c *Controller) Config() config.TimelineConfig {
	return c.cfg
}

// StartPoses 动画开始前的位姿（蜡烛隐藏）
func (c *Controller) StartPoses() Poses {
	return Poses{
		Cake: ObjectPose{
			Position: utils.Vec3{X: 0, Y: c.cfg.CakeStartY, Z: 0},
			Visible:  true,
		},
		Table: ObjectPose{
			Position: utils.Vec3{X: 0, Y: c.cfg.TableY, Z: c.cfg.TableStartZ},
			Visible:  true,
		},
		Candle: ObjectPose{
			Position: utils.Vec3{X: c.cfg.CandleX, Y: c.cfg.CandleStartY, Z: c.cfg.CandleZ},
			Visible:  false,
		},
	}
}

// EndPoses 动画结束时的精确位姿（避免浮点累积误差）
func (c *Controller) EndPoses() Poses {
	return Poses{
		Cake: ObjectPose{
			Position: utils.Vec3{X: 0, Y: c.cfg.CakeEndY, Z: 0},
			Rotation: utils.Vec3{Y: 2 * math.Pi},
			Visible:  true,
		},
		Table: ObjectPose{
			Position: utils.Vec3{X: 0, Y: c.cfg.TableY, Z: c.cfg.TableEndZ},
			Visible:  true,
		},
		Candle: ObjectPose{
			Position: utils.Vec3{X: c.cfg.CandleX, Y: c.cfg.CandleEndY, Z: c.cfg.CandleZ},
			Visible:  true,
		},
	}
}

// PosesAt 计算 elapsed 时刻的位姿（elapsed 会被限制在 [0, TotalDuration]）
func (c *Controller) PosesAt(elapsed float64) Poses {
	elapsed = utils.Clamp(elapsed, 0, c.schedule.TotalDuration)
	p := c.StartPoses()

	p.Cake.Position.Y = c.cakeDrop.Value(elapsed)
	p.Cake.Rotation.Y = c.cakeSpin.Value(elapsed)

	// 起点之前 Value 返回 From，即桌子停在 TableStartZ
	p.Table.Position.Z = c.tableSlide.Value(elapsed)

	if c.candleDrop.Started(elapsed) {
		p.Candle.Visible = true
		p.Candle.Position.Y = c.candleDrop.Value(elapsed)
	}
	return p
}

// SignalsAt 计算 elapsed 时刻的背景透明度和环境进度
func (c *Controller) SignalsAt(elapsed float64) (opacity, progress float64) {
	elapsed = utils.Clamp(elapsed, 0, c.schedule.TotalDuration)
	opacity = 1 - c.fade.Eased(elapsed)
	return opacity, 1 - opacity
}

// Tick 每个渲染帧调用一次
//
// 参数:
//   - s: 调用方持有的时间轴状态（会被就地更新）
//   - now: 单调不减的时钟值（秒）
//   - playing: 当前是否处于播放状态
func (c *Controller) Tick(s *State, now float64, playing bool) Frame {
	var f Frame

	// 首帧（无论是否播放）把所有对象放到起始位姿，只做一次
	if !s.HasPrimed {
		s.HasPrimed = true
		start := c.StartPoses()
		f.Poses = &start
	}

	s.IsPlaying = playing

	// 暂停/停止：派生信号回到开场状态，但不回退位姿
	if !playing {
		s.HasStartTime = false
		s.AnimationStartTime = 0
		s.HasCompleted = false
		s.CompletionNotified = false
		c.forceSignals(s, &f, 1, 0)
		return f
	}

	// 已完成：只维持终态信号，不再写位姿
	if s.HasCompleted {
		f.Elapsed = c.schedule.TotalDuration
		c.forceSignals(s, &f, 0, 1)
		c.complete(s, &f)
		return f
	}

	// 动画时钟从第一帧播放开始计时，而不是从激活开始
	if !s.HasStartTime {
		s.HasStartTime = true
		s.AnimationStartTime = now
	}

	elapsed := utils.Clamp(now-s.AnimationStartTime, 0, c.schedule.TotalDuration)
	f.Elapsed = elapsed

	if elapsed >= c.schedule.TotalDuration {
		end := c.EndPoses()
		f.Poses = &end
		c.forceSignals(s, &f, 0, 1)
		s.HasCompleted = true
		c.complete(s, &f)
		return f
	}

	poses := c.PosesAt(elapsed)
	f.Poses = &poses

	f.Opacity, f.Progress = c.SignalsAt(elapsed)
	if c.exceedsDeadband(s, f.Opacity, f.Progress) {
		f.EmitSignals = true
		s.LastEmittedOpacity = f.Opacity
		s.LastEmittedEnvironmentProgress = f.Progress
	}
	return f
}

// exceedsDeadband 变化量超过死区才转发
func (c *Controller) exceedsDeadband(s *State, opacity, progress float64) bool {
	return math.Abs(opacity-s.LastEmittedOpacity) > c.cfg.SignalDeadband ||
		math.Abs(progress-s.LastEmittedEnvironmentProgress) > c.cfg.SignalDeadband
}

// forceSignals 设置强制信号值；与上次转发的值不同才需要转发
func (c *Controller) forceSignals(s *State, f *Frame, opacity, progress float64) {
	f.Opacity = opacity
	f.Progress = progress
	if s.LastEmittedOpacity != opacity || s.LastEmittedEnvironmentProgress != progress {
		f.EmitSignals = true
		s.LastEmittedOpacity = opacity
		s.LastEmittedEnvironmentProgress = progress
	}
}

// complete 标记完成并保证回调在一个播放周期内只触发一次
func (c *Controller) complete(s *State, f *Frame) {
	f.Completed = true
	if !s.CompletionNotified {
		s.CompletionNotified = true
		f.NotifyComplete = true
	}
}
