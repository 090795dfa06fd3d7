package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/decker502/birthdaycard/pkg/embedded"
	"github.com/decker502/birthdaycard/pkg/utils"
	"gopkg.in/yaml.v3"
)

// 时间轴的固定契约常量
// 这些数值是调出来的手感值，没有推导依据，必须原样保留
const (
	// DefaultSignalDeadband 背景透明度/环境进度的最小转发变化量
	DefaultSignalDeadband = 0.005

	// DefaultTableLeadTime 桌子在蛋糕落地前多少秒开始滑入（在滑动时长之外额外提前）
	DefaultTableLeadTime = 0.1

	// DefaultCandleExtraDelay 蜡烛在蛋糕/桌子都就位后额外等待的秒数
	DefaultCandleExtraDelay = 1.0
)

// SceneConfigPath 内置场景配置路径
const SceneConfigPath = "data/scene.yaml"

// SceneConfig 场景配置
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Timeline  TimelineConfig  `yaml:"timeline"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Camera    CameraConfig    `yaml:"camera"`
	Fireworks FireworksConfig `yaml:"fireworks"`
	Audio     AudioConfig     `yaml:"audio"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TimelineConfig 开场动画时间轴配置
//
// 各段动画的起点互相依赖：
//   - 桌子滑入起点取决于蛋糕下落时长
//   - 蜡烛落下起点取决于桌子滑入结束
//   - 背景淡出窗口取决于蜡烛起点
//
// 因此这里只配置"时长"和"位姿"，偏移量统一由 timeline.NewSchedule 推导。
type TimelineConfig struct {
	// 蛋糕：从 CakeStartY 下落到 CakeEndY，同时绕 Y 轴旋转一整圈
	CakeDuration float64 `yaml:"cakeDuration"`
	CakeStartY   float64 `yaml:"cakeStartY"`
	CakeEndY     float64 `yaml:"cakeEndY"`

	// 桌子：沿 Z 轴从 TableStartZ 滑到 TableEndZ
	TableSlideDuration float64 `yaml:"tableSlideDuration"`
	TableLeadTime      float64 `yaml:"tableLeadTime"`
	TableY             float64 `yaml:"tableY"`
	TableStartZ        float64 `yaml:"tableStartZ"`
	TableEndZ          float64 `yaml:"tableEndZ"`

	// 蜡烛：在 CandleX/CandleZ 处从 CandleStartY 落到 CandleEndY
	CandleExtraDelay   float64 `yaml:"candleExtraDelay"`
	CandleDropDuration float64 `yaml:"candleDropDuration"`
	CandleX            float64 `yaml:"candleX"`
	CandleZ            float64 `yaml:"candleZ"`
	CandleStartY       float64 `yaml:"candleStartY"`
	CandleEndY         float64 `yaml:"candleEndY"`

	// 背景淡出：在蜡烛起点前 FadeLead 秒结束，持续 FadeDuration 秒
	FadeDuration float64 `yaml:"fadeDuration"`
	FadeLead     float64 `yaml:"fadeLead"`

	// SignalDeadband 派生信号的转发死区
	SignalDeadband float64 `yaml:"signalDeadband"`
}

// LightingConfig 环境光配置（由环境进度驱动）
type LightingConfig struct {
	MinIntensity float64   `yaml:"minIntensity"`
	MaxIntensity float64   `yaml:"maxIntensity"`
	SkyFrom      utils.RGB `yaml:"skyFrom"`
	SkyTo        utils.RGB `yaml:"skyTo"`
	Overlay      utils.RGB `yaml:"overlay"`
}

// CameraConfig 固定针孔相机
type CameraConfig struct {
	Position    utils.Vec3 `yaml:"position"`
	FocalLength float64    `yaml:"focalLength"`
}

// FireworksConfig 烟花参数
type FireworksConfig struct {
	Bursts            int     `yaml:"bursts"`
	ParticlesPerBurst int     `yaml:"particlesPerBurst"`
	Speed             float64 `yaml:"speed"`
	Gravity           float64 `yaml:"gravity"`
	Drag              float64 `yaml:"drag"`
	Lifetime          float64 `yaml:"lifetime"`
	LaunchInterval    float64 `yaml:"launchInterval"`
}

// AudioConfig 音频参数
type AudioConfig struct {
	SampleRate     int     `yaml:"sampleRate"`
	MusicVolume    float64 `yaml:"musicVolume"`
	ClickVolume    float64 `yaml:"clickVolume"`
	MusicFadeIn    float64 `yaml:"musicFadeIn"`
	MusicFadeOut   float64 `yaml:"musicFadeOut"`
	MusicTempoBPM  float64 `yaml:"musicTempoBPM"`
	ClickFrequency float64 `yaml:"clickFrequency"`
}

// DefaultTimelineConfig 返回契约默认值
//
// 蛋糕 3s、桌子滑入 0.7s ⇒ 桌子 2.2s 开始；
// 蜡烛在 max(3, 2.9)+1.0 = 4.0s 开始，落下 1.2s ⇒ 总时长 5.2s。
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		CakeDuration: 3.0,
		CakeStartY:   6.0,
		CakeEndY:     0.9,

		TableSlideDuration: 0.7,
		TableLeadTime:      DefaultTableLeadTime,
		TableY:             0,
		TableStartZ:        -12.0,
		TableEndZ:          0,

		CandleExtraDelay:   DefaultCandleExtraDelay,
		CandleDropDuration: 1.2,
		CandleX:            0,
		CandleZ:            0,
		CandleStartY:       5.0,
		CandleEndY:         1.55,

		FadeDuration: 1.5,
		FadeLead:     0.5,

		SignalDeadband: DefaultSignalDeadband,
	}
}

// DefaultSceneConfig 返回完整的默认场景配置
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Window: WindowConfig{Width: 800, Height: 600, Title: "Happy Birthday"},
		Timeline: DefaultTimelineConfig(),
		Lighting: LightingConfig{
			MinIntensity: 0.15,
			MaxIntensity: 1.0,
			SkyFrom:      utils.RGB{R: 8, G: 6, B: 20},
			SkyTo:        utils.RGB{R: 46, G: 26, B: 64},
			Overlay:      utils.RGB{R: 0, G: 0, B: 0},
		},
		Camera: CameraConfig{
			Position:    utils.Vec3{X: 0, Y: 2.4, Z: 8},
			FocalLength: 520,
		},
		Fireworks: FireworksConfig{
			Bursts:            5,
			ParticlesPerBurst: 48,
			Speed:             3.2,
			Gravity:           2.6,
			Drag:              0.9,
			Lifetime:          1.8,
			LaunchInterval:    0.35,
		},
		Audio: AudioConfig{
			SampleRate:     48000,
			MusicVolume:    0.6,
			ClickVolume:    0.35,
			MusicFadeIn:    2.0,
			MusicFadeOut:   1.0,
			MusicTempoBPM:  120,
			ClickFrequency: 1800,
		},
	}
}

// ParseSceneConfig 解析 YAML 场景配置
// 未出现的字段保持默认值
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// LoadSceneConfig 加载场景配置
//
// 参数:
//   - path: "data/" 开头时从嵌入资源读取，否则从磁盘读取
//
// 返回:
//   - *SceneConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// Validate 校验场景配置
func (c *SceneConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Timeline.Validate(); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if c.Lighting.MinIntensity < 0 || c.Lighting.MaxIntensity > 1 || c.Lighting.MinIntensity > c.Lighting.MaxIntensity {
		return fmt.Errorf("lighting intensity range invalid: [%.2f, %.2f]", c.Lighting.MinIntensity, c.Lighting.MaxIntensity)
	}
	if c.Camera.FocalLength <= 0 {
		return fmt.Errorf("camera focalLength must be positive, got %.2f", c.Camera.FocalLength)
	}
	if c.Fireworks.Lifetime <= 0 {
		return fmt.Errorf("fireworks lifetime must be positive, got %.2f", c.Fireworks.Lifetime)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sampleRate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// Validate 校验时间轴配置
// 所有时长必须为正（进度计算要除以时长）
func (c *TimelineConfig) Validate() error {
	durations := []struct {
		name  string
		value float64
	}{
		{"cakeDuration", c.CakeDuration},
		{"tableSlideDuration", c.TableSlideDuration},
		{"candleDropDuration", c.CandleDropDuration},
		{"fadeDuration", c.FadeDuration},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %.3f", d.name, d.value)
		}
	}
	if c.TableLeadTime < 0 || c.CandleExtraDelay < 0 || c.FadeLead < 0 {
		return fmt.Errorf("offsets must not be negative (tableLeadTime=%.3f, candleExtraDelay=%.3f, fadeLead=%.3f)",
			c.TableLeadTime, c.CandleExtraDelay, c.FadeLead)
	}
	if c.SignalDeadband < 0 {
		return fmt.Errorf("signalDeadband must not be negative, got %.4f", c.SignalDeadband)
	}
	return nil
}

// readConfigFile 读取配置文件
// "data/" 开头且嵌入资源已初始化时走 embedded，其余情况读磁盘
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && strings.HasPrefix(strings.TrimPrefix(path, "./"), "data/") {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
