package game

// Clock 场景时钟
// 累加每个 tick 的 dt，得到单调不减的场景时间（秒），作为时间轴和文字序列的时钟源
type Clock struct {
	now float64
}

// NewClock 创建从 0 开始的时钟
func NewClock() *Clock {
	return &Clock{}
}

// Advance 推进时钟；负数或 NaN 的 dt 会被忽略，保证时钟不会倒退
func (c *Clock) Advance(dt float64) float64 {
	if dt > 0 {
		c.now += dt
	}
	return c.now
}

// Now 返回当前时钟值
func (c *Clock) Now() float64 {
	return c.now
}

// Reset 把时钟归零
func (c *Clock) Reset() {
	c.now = 0
}
