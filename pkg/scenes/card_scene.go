package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/birthdaycard/internal/synth"
	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/systems"
	"github.com/decker502/birthdaycard/pkg/timeline"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// Options 场景启动选项
type Options struct {
	// SkipIntro 跳过开场文字，直接开始动画（调参模式使用）
	SkipIntro bool
	// Seed 烟花随机种子
	Seed int64
}

// CardScene 生日贺卡场景
//
// 流程：开场打字（黑屏）→ 时间轴动画（蛋糕落下、桌子滑入、蜡烛落下、背景淡出）→ 自由互动。
// 所有系统共用同一个场景时钟；每个 tick 的更新顺序固定：
// 时钟 → 输入 → 文字 → 时间轴 → 蜡烛 → 烟花 → 卡片 → 音频。
type CardScene struct {
	sceneConfig *config.SceneConfig
	textConfig  *config.TextConfig

	entityManager *ecs.EntityManager
	clock         *game.Clock
	state         *game.SceneState
	audioManager  *game.AudioManager

	timelineSystem    *systems.AnimationTimelineSystem
	environmentSystem *systems.EnvironmentSystem
	textSystem        *systems.TextSequenceSystem
	candleSystem      *systems.CandleSystem
	fireworkSystem    *systems.FireworkSystem
	cardSystem        *systems.CardSystem
	interactionSystem *systems.InteractionSystem
	renderSystem      *systems.RenderSystem

	objects entities.SceneObjects

	// readActions 每个 tick 采样一次按键
	readActions func() utils.KeyActions
}

// NewCardScene 创建贺卡场景
//
// 参数:
//   - sceneCfg: 场景配置（时间轴、光照、相机、烟花、音频）
//   - textCfg: 文案配置
//   - audioCtx: ebiten 音频上下文，可为 nil（静音）
//   - opts: 启动选项
func NewCardScene(sceneCfg *config.SceneConfig, textCfg *config.TextConfig, audioCtx *audio.Context, opts Options) (*CardScene, error) {
	if sceneCfg == nil || textCfg == nil {
		return nil, fmt.Errorf("scene and text config are required")
	}

	s := &CardScene{
		sceneConfig:   sceneCfg,
		textConfig:    textCfg,
		entityManager: ecs.NewEntityManager(),
		clock:         game.NewClock(),
		state:         game.NewSceneState(),
		readActions:   utils.ReadKeyActions,
	}

	s.audioManager = game.NewAudioManager(audioCtx, sceneCfg.Audio)
	if audioCtx != nil {
		rate := audioCtx.SampleRate()
		s.audioManager.RegisterSound(game.SoundTypeClick, synth.ClickPCM(rate, sceneCfg.Audio.ClickFrequency, 1))
		s.audioManager.RegisterMusic(game.MusicBirthday, synth.MelodyPCM(rate, sceneCfg.Audio.MusicTempoBPM, 1))
	}

	if err := s.createEntities(); err != nil {
		return nil, err
	}
	s.createSystems(opts.Seed)

	if opts.SkipIntro {
		s.interactionSystem.OnIntroFinished()
	} else {
		s.textSystem.Start(components.TextSequenceIntro, s.clock.Now())
	}

	log.Printf("[CardScene] created (skipIntro=%v)", opts.SkipIntro)
	return s, nil
}

func (s *CardScene) createEntities() error {
	ctrl := timeline.NewController(s.sceneConfig.Timeline)
	objs, err := entities.NewSceneObjects(s.entityManager, ctrl.StartPoses())
	if err != nil {
		return fmt.Errorf("failed to create scene objects: %w", err)
	}
	s.objects = objs

	if _, err := entities.NewEnvironmentEntity(s.entityManager, s.sceneConfig.Lighting); err != nil {
		return fmt.Errorf("failed to create environment: %w", err)
	}
	if _, err := entities.NewTextSequenceEntity(s.entityManager, components.TextSequenceIntro, s.textConfig.Intro); err != nil {
		return fmt.Errorf("failed to create intro text: %w", err)
	}
	if _, err := entities.NewTextSequenceEntity(s.entityManager, components.TextSequenceTerminal, s.textConfig.Terminal); err != nil {
		return fmt.Errorf("failed to create terminal text: %w", err)
	}
	if _, err := entities.NewHintEntity(s.entityManager, s.textConfig.Hint); err != nil {
		return fmt.Errorf("failed to create hint: %w", err)
	}
	if _, err := entities.NewPhotoCardEntity(s.entityManager, s.textConfig.Card); err != nil {
		return fmt.Errorf("failed to create photo card: %w", err)
	}
	return nil
}

func (s *CardScene) createSystems(seed int64) {
	em := s.entityManager

	s.environmentSystem = systems.NewEnvironmentSystem(em, s.sceneConfig.Lighting)
	s.timelineSystem = systems.NewAnimationTimelineSystem(
		em,
		timeline.NewController(s.sceneConfig.Timeline),
		func() bool { return s.state.IsPlaying },
		s.environmentSystem,
	)
	s.textSystem = systems.NewTextSequenceSystem(em, s.audioManager)
	s.candleSystem = systems.NewCandleSystem(em)
	s.fireworkSystem = systems.NewFireworkSystem(em, s.sceneConfig.Fireworks, seed)
	s.cardSystem = systems.NewCardSystem(em)
	s.interactionSystem = systems.NewInteractionSystem(
		s.state,
		s.textSystem,
		s.fireworkSystem,
		s.cardSystem,
		s.candleSystem,
		s.audioManager,
		s.sceneConfig.Audio,
	)
	s.renderSystem = systems.NewRenderSystem(em, s.sceneConfig)

	s.textSystem.SetOnSceneStart(components.TextSequenceIntro, s.interactionSystem.OnIntroFinished)
	s.timelineSystem.SetOnComplete(s.interactionSystem.OnAnimationComplete)
}

// Update 推进一个 tick
func (s *CardScene) Update(deltaTime float64) {
	now := s.clock.Advance(deltaTime)

	s.interactionSystem.Update(s.readActions(), now)
	s.textSystem.Update(now)
	s.timelineSystem.Update(now)
	s.candleSystem.Update(deltaTime)
	s.fireworkSystem.Update(deltaTime)
	s.cardSystem.Update()
	s.audioManager.Update(deltaTime)
}

// Draw 绘制场景
func (s *CardScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// Close 场景被替换时停止音乐
func (s *CardScene) Close() {
	s.audioManager.StopMusic()
	log.Printf("[CardScene] closed at %.2fs", s.clock.Now())
}

// State 返回场景交互状态
func (s *CardScene) State() *game.SceneState {
	return s.state
}

// Now 返回场景时钟
func (s *CardScene) Now() float64 {
	return s.clock.Now()
}

// EntityManager 返回场景的实体管理器
func (s *CardScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Objects 返回蛋糕、桌子、蜡烛的实体 ID
func (s *CardScene) Objects() entities.SceneObjects {
	return s.objects
}
