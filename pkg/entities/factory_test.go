package entities

import (
	"math"
	"testing"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/timeline"
	"github.com/decker502/birthdaycard/pkg/utils"
)

func TestNewSceneObjectsUsesStartPoses(t *testing.T) {
	em := ecs.NewEntityManager()
	ctrl := timeline.NewController(config.DefaultTimelineConfig())
	start := ctrl.StartPoses()

	objs, err := NewSceneObjects(em, start)
	if err != nil {
		t.Fatalf("NewSceneObjects failed: %v", err)
	}

	tests := []struct {
		name string
		id   ecs.EntityID
		kind components.ObjectKind
		pose timeline.ObjectPose
	}{
		{"cake", objs.Cake, components.KindCake, start.Cake},
		{"table", objs.Table, components.KindTable, start.Table},
		{"candle", objs.Candle, components.KindCandle, start.Candle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := ecs.GetComponent[*components.SceneObjectComponent](em, tt.id)
			if !ok {
				t.Fatal("missing SceneObjectComponent")
			}
			if obj.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", obj.Kind, tt.kind)
			}

			tr, ok := ecs.GetComponent[*components.TransformComponent](em, tt.id)
			if !ok {
				t.Fatal("missing TransformComponent")
			}
			if tr.Position != tt.pose.Position || tr.Visible != tt.pose.Visible {
				t.Errorf("transform = %+v, want pose %+v", tr, tt.pose)
			}
		})
	}

	candle, ok := ecs.GetComponent[*components.CandleComponent](em, objs.Candle)
	if !ok || !candle.Lit {
		t.Error("candle should be created lit")
	}
}

func TestCakeRestsOnTableUnderCandle(t *testing.T) {
	cfg := config.DefaultTimelineConfig()

	bottom := cfg.CakeEndY - CakeHeight/2
	top := cfg.CakeEndY + CakeHeight/2
	if math.Abs(bottom-(cfg.TableY+TableThickness)) > 1e-9 {
		t.Errorf("cake bottom %.3f does not touch the table top %.3f", bottom, cfg.TableY+TableThickness)
	}
	if math.Abs(top-cfg.CandleEndY) > 1e-9 {
		t.Errorf("cake top %.3f does not meet the candle base %.3f", top, cfg.CandleEndY)
	}
}

func TestFactoriesRejectNilManager(t *testing.T) {
	pose := timeline.ObjectPose{Visible: true}
	if _, err := NewCakeEntity(nil, pose); err == nil {
		t.Error("NewCakeEntity(nil) should fail")
	}
	if _, err := NewEnvironmentEntity(nil, config.LightingConfig{}); err == nil {
		t.Error("NewEnvironmentEntity(nil) should fail")
	}
	if _, err := NewTextSequenceEntity(nil, components.TextSequenceIntro, config.SequenceConfig{}); err == nil {
		t.Error("NewTextSequenceEntity(nil) should fail")
	}
}

func TestNewEnvironmentEntityStartsDark(t *testing.T) {
	em := ecs.NewEntityManager()
	lighting := config.DefaultSceneConfig().Lighting

	id, err := NewEnvironmentEntity(em, lighting)
	if err != nil {
		t.Fatal(err)
	}

	fade, _ := ecs.GetComponent[*components.BackgroundFadeComponent](em, id)
	light, _ := ecs.GetComponent[*components.EnvironmentLightComponent](em, id)
	if fade == nil || light == nil {
		t.Fatal("environment components missing")
	}
	if fade.Opacity != 1 || light.Progress != 0 {
		t.Errorf("opacity/progress = %.2f/%.2f, want 1/0", fade.Opacity, light.Progress)
	}
	if light.Intensity != lighting.MinIntensity || light.Sky != lighting.SkyFrom.RGBA() {
		t.Errorf("light = %+v, want min intensity and SkyFrom", light)
	}
}

func TestNewTextSequenceEntityIsIdle(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewTextSequenceEntity(em, components.TextSequenceTerminal, config.DefaultTextConfig().Terminal)
	if err != nil {
		t.Fatal(err)
	}

	seq, ok := ecs.GetComponent[*components.TextSequenceComponent](em, id)
	if !ok {
		t.Fatal("missing TextSequenceComponent")
	}
	if seq.Kind != components.TextSequenceTerminal || seq.State.HasDeadline {
		t.Errorf("unexpected sequence: %+v", seq)
	}
}

func TestNewPhotoCardEntityCopiesCaptions(t *testing.T) {
	em := ecs.NewEntityManager()
	card := config.CardConfig{Title: "T", Captions: []string{"a", "b"}}

	id, err := NewPhotoCardEntity(em, card)
	if err != nil {
		t.Fatal(err)
	}
	card.Captions[0] = "changed"

	comp, _ := ecs.GetComponent[*components.PhotoCardComponent](em, id)
	if comp.Captions[0] != "a" {
		t.Error("captions should be copied, not shared")
	}
	if comp.Open || comp.Scale != 0 {
		t.Errorf("card should start closed: %+v", comp)
	}
}

func TestNewFireworkParticle(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewFireworkParticle(em, utils.Vec3{Y: 3}, utils.Vec3{X: 1}, cakeColor, 2, 1.5)

	p, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
	if !ok {
		t.Fatal("missing ParticleComponent")
	}
	if p.Alpha != 1 || p.Age != 0 || p.Lifetime != 1.5 {
		t.Errorf("unexpected particle: %+v", p)
	}
}
