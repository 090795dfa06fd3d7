package systems

import (
	"fmt"
	"math"
	"testing"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/timeline"
)

// recordingSink 按顺序记录收到的信号和完成回调
type recordingSink struct {
	events []string
}

func (r *recordingSink) OnBackgroundOpacityChange(opacity float64) {
	r.events = append(r.events, fmt.Sprintf("opacity:%.3f", opacity))
}

func (r *recordingSink) OnEnvironmentProgressChange(progress float64) {
	r.events = append(r.events, fmt.Sprintf("progress:%.3f", progress))
}

func newTimelineFixture(t *testing.T) (*ecs.EntityManager, entities.SceneObjects, *AnimationTimelineSystem, *recordingSink, *bool) {
	t.Helper()

	em := ecs.NewEntityManager()
	ctrl := timeline.NewController(config.DefaultTimelineConfig())
	objs, err := entities.NewSceneObjects(em, ctrl.StartPoses())
	if err != nil {
		t.Fatalf("NewSceneObjects failed: %v", err)
	}

	playing := false
	sink := &recordingSink{}
	sys := NewAnimationTimelineSystem(em, ctrl, func() bool { return playing }, sink)
	sys.SetOnComplete(func() { sink.events = append(sink.events, "complete") })
	return em, objs, sys, sink, &playing
}

func TestAnimationTimelineIdleEmitsNothing(t *testing.T) {
	_, _, sys, sink, _ := newTimelineFixture(t)

	for i := 0; i < 10; i++ {
		sys.Update(float64(i) * 0.5)
	}

	if len(sink.events) != 0 {
		t.Errorf("idle timeline should not emit, got %v", sink.events)
	}
	if sys.LastFrame().Completed {
		t.Error("idle timeline should not complete")
	}
}

func TestAnimationTimelineAppliesPoses(t *testing.T) {
	em, objs, sys, _, playing := newTimelineFixture(t)
	ctrl := sys.Controller()

	*playing = true
	sys.Update(10) // 开始计时
	sys.Update(11) // elapsed=1

	want := ctrl.PosesAt(1)
	cake, _ := ecs.GetComponent[*components.TransformComponent](em, objs.Cake)
	if cake.Position != want.Cake.Position || cake.Rotation != want.Cake.Rotation {
		t.Errorf("cake transform = %+v, want %+v", cake, want.Cake)
	}

	candle, _ := ecs.GetComponent[*components.TransformComponent](em, objs.Candle)
	if candle.Visible {
		t.Error("candle should stay hidden before its drop starts")
	}

	if got := sys.LastFrame().Elapsed; got != 1 {
		t.Errorf("Elapsed = %v, want 1", got)
	}
}

func TestAnimationTimelineCompletionOrder(t *testing.T) {
	em, objs, sys, sink, playing := newTimelineFixture(t)
	total := sys.Controller().Schedule().TotalDuration

	*playing = true
	sys.Update(1)
	sys.Update(2 + total)

	want := []string{"opacity:0.000", "progress:1.000", "complete"}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, sink.events[i], want[i])
		}
	}

	end := sys.Controller().EndPoses()
	for name, tc := range map[string]struct {
		id   ecs.EntityID
		pose timeline.ObjectPose
	}{
		"cake":   {objs.Cake, end.Cake},
		"table":  {objs.Table, end.Table},
		"candle": {objs.Candle, end.Candle},
	} {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, tc.id)
		if tr.Position != tc.pose.Position || tr.Visible != tc.pose.Visible {
			t.Errorf("%s transform = %+v, want %+v", name, tr, tc.pose)
		}
	}

	// 完成之后继续播放：不再重复回调
	sys.Update(3 + total)
	sys.Update(4 + total)
	if len(sink.events) != len(want) {
		t.Errorf("completion should fire once, events = %v", sink.events)
	}
}

func TestAnimationTimelinePauseResetsSignals(t *testing.T) {
	_, _, sys, sink, playing := newTimelineFixture(t)
	total := sys.Controller().Schedule().TotalDuration

	*playing = true
	sys.Update(0)
	sys.Update(total)

	*playing = false
	sink.events = nil
	sys.Update(total + 1)

	want := []string{"opacity:1.000", "progress:0.000"}
	if len(sink.events) != len(want) || sink.events[0] != want[0] || sink.events[1] != want[1] {
		t.Errorf("pause events = %v, want %v", sink.events, want)
	}

	// 重新播放后动画从头开始，并再次触发完成
	*playing = true
	sink.events = nil
	sys.Update(100)
	sys.Update(101 + total)
	if n := len(sink.events); n == 0 || sink.events[n-1] != "complete" {
		t.Errorf("replay should complete again, events = %v", sink.events)
	}
}

func TestAnimationTimelineDrivesEnvironment(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultSceneConfig()
	ctrl := timeline.NewController(cfg.Timeline)
	if _, err := entities.NewSceneObjects(em, ctrl.StartPoses()); err != nil {
		t.Fatalf("NewSceneObjects failed: %v", err)
	}
	envID, err := entities.NewEnvironmentEntity(em, cfg.Lighting)
	if err != nil {
		t.Fatalf("NewEnvironmentEntity failed: %v", err)
	}

	env := NewEnvironmentSystem(em, cfg.Lighting)
	sys := NewAnimationTimelineSystem(em, ctrl, func() bool { return true }, env)

	total := ctrl.Schedule().TotalDuration
	for now := 0.0; now <= total+0.1; now += 1.0 / 60 {
		sys.Update(now)
	}

	fade, _ := ecs.GetComponent[*components.BackgroundFadeComponent](em, envID)
	light, _ := ecs.GetComponent[*components.EnvironmentLightComponent](em, envID)
	if fade.Opacity != 0 {
		t.Errorf("Opacity = %v, want 0", fade.Opacity)
	}
	if light.Progress != 1 || math.Abs(light.Intensity-cfg.Lighting.MaxIntensity) > 1e-9 {
		t.Errorf("light = %+v, want progress 1 and max intensity", light)
	}
	if light.Sky != cfg.Lighting.SkyTo.RGBA() {
		t.Errorf("Sky = %v, want %v", light.Sky, cfg.Lighting.SkyTo.RGBA())
	}
}
