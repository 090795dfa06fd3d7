package systems

import (
	"testing"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/timeline"
	"github.com/decker502/birthdaycard/pkg/typewriter"
	"github.com/decker502/birthdaycard/pkg/utils"
)

type interactionFixture struct {
	em          *ecs.EntityManager
	state       *game.SceneState
	text        *TextSequenceSystem
	fireworks   *FireworkSystem
	card        *CardSystem
	candles     *CandleSystem
	audio       *fakeAudio
	interaction *InteractionSystem
	objs        entities.SceneObjects
	cardID      ecs.EntityID
}

func newInteractionFixture(t *testing.T) *interactionFixture {
	t.Helper()

	sceneCfg := config.DefaultSceneConfig()
	textCfg := config.DefaultTextConfig()
	em := ecs.NewEntityManager()

	ctrl := timeline.NewController(sceneCfg.Timeline)
	objs, err := entities.NewSceneObjects(em, ctrl.StartPoses())
	if err != nil {
		t.Fatalf("NewSceneObjects failed: %v", err)
	}
	if _, err := entities.NewTextSequenceEntity(em, components.TextSequenceIntro, testSequenceConfig("hi")); err != nil {
		t.Fatal(err)
	}
	if _, err := entities.NewTextSequenceEntity(em, components.TextSequenceTerminal, textCfg.Terminal); err != nil {
		t.Fatal(err)
	}
	if _, err := entities.NewHintEntity(em, textCfg.Hint); err != nil {
		t.Fatal(err)
	}
	cardID, err := entities.NewPhotoCardEntity(em, textCfg.Card)
	if err != nil {
		t.Fatal(err)
	}

	f := &interactionFixture{
		em:        em,
		state:     game.NewSceneState(),
		fireworks: NewFireworkSystem(em, sceneCfg.Fireworks, 1),
		card:      NewCardSystem(em),
		candles:   NewCandleSystem(em),
		audio:     &fakeAudio{},
		objs:      objs,
		cardID:    cardID,
	}
	f.text = NewTextSequenceSystem(em, f.audio)
	f.interaction = NewInteractionSystem(f.state, f.text, f.fireworks, f.card, f.candles, f.audio, sceneCfg.Audio)
	f.text.SetOnSceneStart(components.TextSequenceIntro, f.interaction.OnIntroFinished)
	f.text.Start(components.TextSequenceIntro, 0)
	return f
}

// finishIntro 跳过开场文字
func (f *interactionFixture) finishIntro(now float64) {
	f.interaction.Update(utils.KeyActions{Confirm: true}, now)
	f.text.Update(now)
}

func TestInteractionConfirmSkipsIntro(t *testing.T) {
	f := newInteractionFixture(t)

	f.finishIntro(0.1)

	if f.state.Phase != game.PhaseAnimating || !f.state.IsPlaying {
		t.Errorf("state = %+v, want animating and playing", f.state)
	}
	if f.text.Sequence(components.TextSequenceIntro).Visible {
		t.Error("intro text should be hidden once playback starts")
	}

	// 动画阶段再按确认键不会有任何效果
	f.finishIntro(0.2)
	if f.state.Phase != game.PhaseAnimating {
		t.Errorf("Phase = %v, want Animating", f.state.Phase)
	}
}

func TestInteractionIntroIgnoresOtherKeys(t *testing.T) {
	f := newInteractionFixture(t)

	f.interaction.Update(utils.KeyActions{TogglePause: true, Fireworks: true, BlowCandle: true}, 0.1)

	if f.state.IsPlaying || f.audio.paused+f.audio.resumed != 0 {
		t.Error("pause should be ignored during the intro")
	}
	if f.fireworks.PendingBursts() != 0 {
		t.Error("fireworks should be ignored during the intro")
	}
	if !f.state.CandleLit {
		t.Error("candle cannot be blown out during the intro")
	}
}

func TestInteractionPauseControlsMusic(t *testing.T) {
	f := newInteractionFixture(t)
	f.finishIntro(0.1)

	f.interaction.Update(utils.KeyActions{TogglePause: true}, 1)
	if f.state.IsPlaying || f.audio.paused != 1 {
		t.Errorf("pause: playing=%v paused=%d", f.state.IsPlaying, f.audio.paused)
	}

	f.interaction.Update(utils.KeyActions{TogglePause: true}, 2)
	if !f.state.IsPlaying || f.audio.resumed != 1 {
		t.Errorf("resume: playing=%v resumed=%d", f.state.IsPlaying, f.audio.resumed)
	}
}

func TestInteractionAnimationComplete(t *testing.T) {
	f := newInteractionFixture(t)
	f.finishIntro(0.1)

	f.interaction.SetNow(6)
	f.interaction.OnAnimationComplete()

	if f.state.Phase != game.PhaseFinished || !f.state.AnimationDone {
		t.Errorf("state = %+v, want finished", f.state)
	}
	if len(f.audio.music) != 1 || f.audio.music[0] != game.MusicBirthday {
		t.Errorf("music = %v, want birthday music", f.audio.music)
	}
	if f.audio.fadeIns[0] != config.DefaultSceneConfig().Audio.MusicFadeIn {
		t.Errorf("fadeIn = %v", f.audio.fadeIns[0])
	}

	for _, id := range ecs.GetEntitiesWith1[*components.HintTextComponent](f.em) {
		hint, _ := ecs.GetComponent[*components.HintTextComponent](f.em, id)
		if !hint.Visible || hint.ShownAt != 6 {
			t.Errorf("hint = %+v, want visible from 6", hint)
		}
	}
}

func TestInteractionBlowCandle(t *testing.T) {
	f := newInteractionFixture(t)
	f.finishIntro(0.1)

	// 动画完成前无效
	f.interaction.Update(utils.KeyActions{BlowCandle: true}, 1)
	if !f.state.CandleLit {
		t.Fatal("candle should stay lit before the animation completes")
	}

	f.interaction.OnAnimationComplete()
	f.interaction.Update(utils.KeyActions{BlowCandle: true}, 7)

	candle, _ := ecs.GetComponent[*components.CandleComponent](f.em, f.objs.Candle)
	if f.state.CandleLit || candle.Lit {
		t.Error("candle should be blown out")
	}
	bursts := f.fireworks.PendingBursts()
	if bursts == 0 {
		t.Error("blowing out the candle should launch fireworks")
	}

	// 重新点燃不放烟花
	f.interaction.Update(utils.KeyActions{BlowCandle: true}, 8)
	if !candle.Lit || f.fireworks.PendingBursts() != bursts {
		t.Errorf("relight: lit=%v pending=%d", candle.Lit, f.fireworks.PendingBursts())
	}
}

func TestInteractionOverlaysAreExclusive(t *testing.T) {
	f := newInteractionFixture(t)
	f.finishIntro(0.1)
	f.interaction.OnAnimationComplete()

	card, _ := ecs.GetComponent[*components.PhotoCardComponent](f.em, f.cardID)
	terminal := f.text.Sequence(components.TextSequenceTerminal)

	f.interaction.Update(utils.KeyActions{OpenTerminal: true}, 10)
	if !terminal.Visible || terminal.State.Phase != typewriter.PhaseTyping {
		t.Fatalf("terminal should start typing, phase = %v", terminal.State.Phase)
	}

	f.interaction.Update(utils.KeyActions{ToggleCard: true}, 11)
	if !card.Open {
		t.Error("card should open")
	}
	if terminal.Visible || terminal.State.Phase != typewriter.PhaseIdle {
		t.Error("opening the card should reset the terminal")
	}

	f.interaction.Update(utils.KeyActions{OpenTerminal: true}, 12)
	if card.Open || !f.state.TerminalOpen {
		t.Error("opening the terminal should close the card")
	}

	f.interaction.Update(utils.KeyActions{Close: true}, 13)
	if f.state.HasOverlay() || terminal.Visible {
		t.Error("Esc should close all overlays")
	}
}

func TestInteractionFireworksKey(t *testing.T) {
	f := newInteractionFixture(t)
	f.finishIntro(0.1)

	f.interaction.Update(utils.KeyActions{Fireworks: true}, 1)
	if got, want := f.fireworks.PendingBursts(), config.DefaultSceneConfig().Fireworks.Bursts; got != want {
		t.Errorf("PendingBursts = %d, want %d", got, want)
	}
}
