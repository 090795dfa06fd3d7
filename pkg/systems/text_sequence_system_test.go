package systems

import (
	"math"
	"testing"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/typewriter"
)

// fakeAudio 记录所有音频调用
type fakeAudio struct {
	sounds  []string
	music   []string
	fadeIns []float64
	paused  int
	resumed int
}

func (f *fakeAudio) PlaySound(id string) bool {
	f.sounds = append(f.sounds, id)
	return true
}

func (f *fakeAudio) PlayMusic(id string, fadeIn float64) bool {
	f.music = append(f.music, id)
	f.fadeIns = append(f.fadeIns, fadeIn)
	return true
}

func (f *fakeAudio) FadeOutMusic(float64) {}
func (f *fakeAudio) PauseMusic() { f.paused++ }
func (f *fakeAudio) ResumeMusic() { f.resumed++ }

// 二进制可精确表示的延迟，避免浮点误差
func testSequenceConfig(lines ...string) config.SequenceConfig {
	return config.SequenceConfig{
		Lines:            lines,
		CharDelay:        0.125,
		DefaultLineDelay: 0.25,
		StartDelay:       0.5,
	}
}

func newTextFixture(t *testing.T, lines ...string) (*TextSequenceSystem, *fakeAudio) {
	t.Helper()
	em := ecs.NewEntityManager()
	if _, err := entities.NewTextSequenceEntity(em, components.TextSequenceIntro, testSequenceConfig(lines...)); err != nil {
		t.Fatalf("NewTextSequenceEntity failed: %v", err)
	}
	if _, err := entities.NewHintEntity(em, "hint"); err != nil {
		t.Fatalf("NewHintEntity failed: %v", err)
	}
	audio := &fakeAudio{}
	return NewTextSequenceSystem(em, audio), audio
}

func TestTextSequenceTypesAndStartsScene(t *testing.T) {
	sys, audio := newTextFixture(t, "ab")
	started := 0
	sys.SetOnSceneStart(components.TextSequenceIntro, func() { started++ })

	sys.Start(components.TextSequenceIntro, 0)
	seq := sys.Sequence(components.TextSequenceIntro)
	if !seq.Visible || seq.State.Phase != typewriter.PhaseTyping {
		t.Fatalf("after Start: %+v", seq.State)
	}

	sys.Update(0.25)
	if got := seq.Sequencer.VisibleLines(seq.State); got[0] != "a" {
		t.Errorf("visible = %q, want a", got)
	}
	if len(audio.sounds) != 1 || audio.sounds[0] != game.SoundTypeClick {
		t.Errorf("sounds = %v, want one click", audio.sounds)
	}

	// 'b' 在 0.375，打完在 0.5，场景开始在 1.0
	sys.Update(0.9)
	if seq.State.Phase != typewriter.PhaseLinesComplete || started != 0 {
		t.Errorf("at 0.9 phase = %v started = %d", seq.State.Phase, started)
	}

	sys.Update(1.0)
	if seq.State.Phase != typewriter.PhaseSceneStarted || started != 1 {
		t.Errorf("at 1.0 phase = %v started = %d", seq.State.Phase, started)
	}

	sys.Update(5)
	if started != 1 {
		t.Errorf("scene start fired %d times, want 1", started)
	}
}

func TestTextSequenceOneClickPerFrame(t *testing.T) {
	sys, audio := newTextFixture(t, "abcdef")
	sys.Start(components.TextSequenceIntro, 0)

	// 一帧追赶 6 个字符
	sys.Update(2)
	if len(audio.sounds) != 1 {
		t.Errorf("sounds = %d, want 1", len(audio.sounds))
	}
}

func TestTextSequenceSkip(t *testing.T) {
	sys, _ := newTextFixture(t, "hello", "world")
	started := 0
	sys.SetOnSceneStart(components.TextSequenceIntro, func() { started++ })

	sys.Start(components.TextSequenceIntro, 0)
	sys.Update(0.3)
	sys.Skip(components.TextSequenceIntro, 0.3)
	sys.Update(0.3)

	seq := sys.Sequence(components.TextSequenceIntro)
	if started != 1 {
		t.Errorf("skip should start the scene immediately, started = %d", started)
	}
	lines := seq.Sequencer.VisibleLines(seq.State)
	if len(lines) != 2 || lines[1] != "world" {
		t.Errorf("visible after skip = %q", lines)
	}
}

func TestTextSequenceResetDropsPending(t *testing.T) {
	sys, audio := newTextFixture(t, "abc")
	started := 0
	sys.SetOnSceneStart(components.TextSequenceIntro, func() { started++ })

	sys.Start(components.TextSequenceIntro, 0)
	sys.Reset(components.TextSequenceIntro)
	sys.Update(10)

	seq := sys.Sequence(components.TextSequenceIntro)
	if seq.Visible || seq.CursorOn || seq.State.Phase != typewriter.PhaseIdle {
		t.Errorf("after reset: visible=%v cursor=%v phase=%v", seq.Visible, seq.CursorOn, seq.State.Phase)
	}
	if started != 0 || len(audio.sounds) != 0 {
		t.Errorf("reset sequence should be silent: started=%d sounds=%d", started, len(audio.sounds))
	}
}

func TestTextSequenceCursorBlinks(t *testing.T) {
	sys, _ := newTextFixture(t, "a")
	sys.Start(components.TextSequenceIntro, 0)
	seq := sys.Sequence(components.TextSequenceIntro)

	sys.Update(0.1)
	if !seq.CursorOn {
		t.Error("cursor should be on in the first half period")
	}
	sys.Update(0.6)
	if seq.CursorOn {
		t.Error("cursor should be off in the second half period")
	}
}

func TestHintFadesIn(t *testing.T) {
	sys, _ := newTextFixture(t, "a")
	sys.ShowHint(1)

	var hint *components.HintTextComponent
	for _, id := range ecs.GetEntitiesWith1[*components.HintTextComponent](sys.entityManager) {
		hint, _ = ecs.GetComponent[*components.HintTextComponent](sys.entityManager, id)
	}

	sys.Update(1 + HintFadeInDuration/2)
	if math.Abs(hint.Alpha-0.5) > 1e-9 {
		t.Errorf("Alpha = %v, want 0.5", hint.Alpha)
	}

	// 再次 ShowHint 不会重新开始淡入
	sys.ShowHint(5)
	sys.Update(1 + HintFadeInDuration*2)
	if hint.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", hint.Alpha)
	}
}
