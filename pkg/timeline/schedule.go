package timeline

import (
	"math"

	"github.com/decker502/birthdaycard/pkg/config"
)

// Schedule 由配置推导出的各段时间偏移（秒，相对于动画开始）
//
// 推导链是固定的，改动任何一个常量都会沿链条传递：
//
//	TableSlideStart = max(0, CakeDuration - TableSlideDuration - TableLeadTime)
//	CandleDropStart = max(CakeDuration, TableSlideEnd) + CandleExtraDelay
//	FadeEnd         = max(CandleDropStart - FadeLead, FadeDuration)
//	FadeStart       = max(0, FadeEnd - FadeDuration)
//	TotalDuration   = CandleDropStart + CandleDropDuration
type Schedule struct {
	CakeDuration    float64
	TableSlideStart float64
	TableSlideEnd   float64
	CandleDropStart float64
	FadeStart       float64
	FadeEnd         float64
	TotalDuration   float64
}

// NewSchedule 按推导链计算时间偏移
func NewSchedule(cfg config.TimelineConfig) Schedule {
	var s Schedule
	s.CakeDuration = cfg.CakeDuration

	s.TableSlideStart = math.Max(0, cfg.CakeDuration-cfg.TableSlideDuration-cfg.TableLeadTime)
	s.TableSlideEnd = s.TableSlideStart + cfg.TableSlideDuration

	s.CandleDropStart = math.Max(cfg.CakeDuration, s.TableSlideEnd) + cfg.CandleExtraDelay

	s.FadeEnd = math.Max(s.CandleDropStart-cfg.FadeLead, cfg.FadeDuration)
	s.FadeStart = math.Max(0, s.FadeEnd-cfg.FadeDuration)

	s.TotalDuration = s.CandleDropStart + cfg.CandleDropDuration
	return s
}
