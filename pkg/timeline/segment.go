package timeline

import "github.com/decker502/birthdaycard/pkg/utils"

// Segment 一段有起点、时长和取值区间的子动画
type Segment struct {
	Start    float64
	Duration float64
	From     float64
	To       float64
}

// End 返回该段结束的时间偏移
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// Progress 返回线性进度 clamp((elapsed-start)/duration, 0, 1)
// 时长非正时退化为阶跃：到达起点即为 1
func (s Segment) Progress(elapsed float64) float64 {
	if s.Duration <= 0 {
		if elapsed >= s.Start {
			return 1
		}
		return 0
	}
	return utils.Clamp01((elapsed - s.Start) / s.Duration)
}

// Eased 返回三次方缓出后的进度
func (s Segment) Eased(elapsed float64) float64 {
	return utils.EaseOutCubic(s.Progress(elapsed))
}

// Value 返回 elapsed 时刻的缓动取值
func (s Segment) Value(elapsed float64) float64 {
	return utils.Lerp(s.From, s.To, s.Eased(elapsed))
}

// Started 是否已到达起点
func (s Segment) Started(elapsed float64) bool {
	return elapsed >= s.Start
}
