package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TextConfigPath 内置文案配置路径
const TextConfigPath = "data/text.yaml"

// TextConfig 贺卡上所有文字内容
//
// 配置文件位置: data/text.yaml
type TextConfig struct {
	// Intro 开场打字机文字（打完后自动开始动画）
	Intro SequenceConfig `yaml:"intro"`

	// Terminal 假的"相机故障"终端输出
	Terminal SequenceConfig `yaml:"terminal"`

	// Card 照片卡片
	Card CardConfig `yaml:"card"`

	// Hint 动画结束后显示的操作提示
	Hint string `yaml:"hint"`
}

// SequenceConfig 逐字显示的参数（单位：秒）
type SequenceConfig struct {
	Lines            []string  `yaml:"lines"`
	CharDelay        float64   `yaml:"charDelay"`
	LineDelays       []float64 `yaml:"lineDelays"`
	DefaultLineDelay float64   `yaml:"defaultLineDelay"`
	StartDelay       float64   `yaml:"startDelay"`
}

// CardConfig 照片卡片内容
type CardConfig struct {
	Title    string   `yaml:"title"`
	Captions []string `yaml:"captions"`
}

// DefaultTextConfig 返回默认文案
func DefaultTextConfig() *TextConfig {
	return &TextConfig{
		Intro: SequenceConfig{
			Lines: []string{
				"Hey you.",
				"",
				"Today is a special day...",
				"so I made you something.",
			},
			CharDelay:        0.1,
			DefaultLineDelay: 0.4,
			StartDelay:       1.0,
		},
		Terminal: SequenceConfig{
			Lines: []string{
				"$ camera --capture",
				"[ERR] sensor busy: too much cake in frame",
				"[ERR] retrying with candle lit...",
				"[FATAL] smile.exe stopped responding",
				"",
				"(press Esc to close)",
			},
			CharDelay:        0.03,
			LineDelays:       []float64{0.2, 0.6, 0.9, 1.2},
			DefaultLineDelay: 0.3,
			StartDelay:       0,
		},
		Card: CardConfig{
			Title:    "Happy Birthday!",
			Captions: []string{"Make a wish.", "Here's to another great year."},
		},
		Hint: "B: blow out the candle   F: fireworks   C: card   K: camera   P: pause",
	}
}

// ParseTextConfig 解析 YAML 文案配置
func ParseTextConfig(data []byte) (*TextConfig, error) {
	cfg := DefaultTextConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse text config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid text config: %w", err)
	}
	return cfg, nil
}

// LoadTextConfig 加载文案配置（"data/" 开头时从嵌入资源读取）
func LoadTextConfig(path string) (*TextConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text config: %w", err)
	}
	return ParseTextConfig(data)
}

// Validate 校验文案配置
// 空行列表是允许的（渲染时显示一个空占位行）
func (c *TextConfig) Validate() error {
	if err := c.Intro.Validate(); err != nil {
		return fmt.Errorf("intro: %w", err)
	}
	if err := c.Terminal.Validate(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// Validate 校验延迟参数
func (c *SequenceConfig) Validate() error {
	if c.CharDelay <= 0 {
		return fmt.Errorf("charDelay must be positive, got %.3f", c.CharDelay)
	}
	if c.DefaultLineDelay < 0 || c.StartDelay < 0 {
		return fmt.Errorf("delays must not be negative (defaultLineDelay=%.3f, startDelay=%.3f)",
			c.DefaultLineDelay, c.StartDelay)
	}
	for i, d := range c.LineDelays {
		if d < 0 {
			return fmt.Errorf("lineDelays[%d] must not be negative, got %.3f", i, d)
		}
	}
	return nil
}
