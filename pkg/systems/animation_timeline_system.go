package systems

import (
	"log"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/timeline"
)

// SignalSink 接收时间轴派生信号的消费者
// 两个值均在 [0,1] 内，且 opacity + progress = 1
type SignalSink interface {
	OnBackgroundOpacityChange(opacity float64)
	OnEnvironmentProgressChange(progress float64)
}

// AnimationTimelineSystem 把时间轴控制器接入 ECS
//
// 每帧：调用 Controller.Tick，然后按固定顺序
//  1. 写入蛋糕/桌子/蜡烛的变换（本系统是动画期间这些变换的唯一写入者）
//  2. 转发背景透明度和环境进度信号
//  3. 触发一次性完成回调
type AnimationTimelineSystem struct {
	entityManager *ecs.EntityManager
	controller    *timeline.Controller
	state         timeline.State
	isPlaying     func() bool
	sink          SignalSink
	onComplete    func()
	lastFrame     timeline.Frame
}

// NewAnimationTimelineSystem 创建时间轴系统
//
// 参数:
//   - em: 实体管理器（按 SceneObjectComponent.Kind 查找受控对象）
//   - ctrl: 时间轴控制器
//   - isPlaying: 每帧读取的播放状态
//   - sink: 信号消费者，可为 nil
func NewAnimationTimelineSystem(em *ecs.EntityManager, ctrl *timeline.Controller, isPlaying func() bool, sink SignalSink) *AnimationTimelineSystem {
	s := ctrl.Schedule()
	log.Printf("[AnimationTimelineSystem] schedule: table=%.2fs candle=%.2fs fade=%.2f~%.2fs total=%.2fs",
		s.TableSlideStart, s.CandleDropStart, s.FadeStart, s.FadeEnd, s.TotalDuration)

	return &AnimationTimelineSystem{
		entityManager: em,
		controller:    ctrl,
		state:         timeline.NewState(),
		isPlaying:     isPlaying,
		sink:          sink,
	}
}

// SetOnComplete 设置动画完成回调（每个播放周期最多触发一次）
func (s *AnimationTimelineSystem) SetOnComplete(fn func()) {
	s.onComplete = fn
}

// Update 以当前时钟值推进时间轴
func (s *AnimationTimelineSystem) Update(now float64) {
	playing := s.isPlaying != nil && s.isPlaying()
	frame := s.controller.Tick(&s.state, now, playing)
	s.lastFrame = frame

	if frame.Poses != nil {
		s.applyPoses(frame.Poses)
	}

	if frame.EmitSignals && s.sink != nil {
		s.sink.OnBackgroundOpacityChange(frame.Opacity)
		s.sink.OnEnvironmentProgressChange(frame.Progress)
	}

	if frame.NotifyComplete {
		log.Printf("[AnimationTimelineSystem] animation complete at %.2fs", now)
		if s.onComplete != nil {
			s.onComplete()
		}
	}
}

// State 返回时间轴状态的副本
func (s *AnimationTimelineSystem) State() timeline.State {
	return s.state
}

// LastFrame 返回最近一次 Tick 的结果
func (s *AnimationTimelineSystem) LastFrame() timeline.Frame {
	return s.lastFrame
}

// Controller 返回使用的控制器
func (s *AnimationTimelineSystem) Controller() *timeline.Controller {
	return s.controller
}

func (s *AnimationTimelineSystem) applyPoses(p *timeline.Poses) {
	entities := ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](s.entityManager, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		switch obj.Kind {
		case components.KindCake:
			applyPose(tr, p.Cake)
		case components.KindTable:
			applyPose(tr, p.Table)
		case components.KindCandle:
			applyPose(tr, p.Candle)
		}
	}
}

func applyPose(tr *components.TransformComponent, pose timeline.ObjectPose) {
	tr.Position = pose.Position
	tr.Rotation = pose.Rotation
	tr.Visible = pose.Visible
}
