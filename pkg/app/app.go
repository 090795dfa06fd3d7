// Package app 提供贺卡应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/game"
	"github.com/decker502/birthdaycard/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件，为空则使用内置的 data/scene.yaml
	ConfigPath string
	// Watch 监听 ConfigPath，变化后重新加载场景（调参用）
	Watch bool
	// SkipIntro 跳过开场文字
	SkipIntro bool
}

// App 是贺卡应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	watcher      *config.Watcher
	sceneConfig  *config.SceneConfig
	textConfig   *config.TextConfig
	audioContext *audio.Context
	skipIntro    bool
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化贺卡应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.SceneConfigPath
	}
	sceneConfig, err := config.LoadSceneConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载场景配置: %s", configPath)

	textConfig, err := config.LoadTextConfig(config.TextConfigPath)
	if err != nil {
		return nil, fmt.Errorf("文案配置加载失败: %w", err)
	}

	// 音频上下文全局只能创建一次
	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(sceneConfig.Audio.SampleRate)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		sceneConfig:  sceneConfig,
		textConfig:   textConfig,
		audioContext: audioContext,
		skipIntro:    cfg.SkipIntro,
		verbose:      cfg.Verbose,
	}
	a.sceneManager.SetSceneFactory(a.newScene)

	if !a.sceneManager.Reload() {
		return nil, fmt.Errorf("场景创建失败")
	}

	if cfg.Watch {
		if cfg.ConfigPath == "" {
			log.Printf("[App] Warning: --watch requires --config, ignored")
		} else if a.watcher, err = config.NewWatcher(cfg.ConfigPath); err != nil {
			log.Printf("[App] Warning: config watcher disabled: %v", err)
		}
	}

	return a, nil
}

func (a *App) newScene() (game.Scene, error) {
	return scenes.NewCardScene(a.sceneConfig, a.textConfig, a.audioContext, scenes.Options{
		SkipIntro: a.skipIntro,
		Seed:      1,
	})
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.sceneConfig.Window.Width, a.sceneConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.pollConfig()

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// pollConfig 配置文件变化后重建场景（跳过开场文字，便于反复观察动画）
func (a *App) pollConfig() {
	if a.watcher == nil {
		return
	}
	cfg := a.watcher.Poll()
	if cfg == nil {
		return
	}

	if cfg.Audio.SampleRate != a.audioContext.SampleRate() {
		log.Printf("[App] Warning: sampleRate change requires restart (%d -> %d)", a.audioContext.SampleRate(), cfg.Audio.SampleRate)
	}
	a.sceneConfig = cfg
	a.skipIntro = true
	a.sceneManager.Reload()
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.sceneConfig.Window.Width, a.sceneConfig.Window.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.sceneConfig.Window
}

// Close 停止配置监听并关闭当前场景
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to stop config watcher: %v", err)
		}
	}
	if closer, ok := a.sceneManager.GetCurrentScene().(game.Closer); ok {
		closer.Close()
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
