// Package timeline 实现贺卡开场动画的时间轴控制器。
//
// 一个连续时钟驱动多段互相重叠的缓动子动画：
//
//	蛋糕下落+旋转   [0, CakeDuration]
//	桌子滑入       [TableSlideStart, TableSlideEnd]   （在蛋糕落地前开始）
//	背景淡出       [FadeStart, FadeEnd]               （在蜡烛出现前结束）
//	蜡烛落下       [CandleDropStart, TotalDuration]
//
// 控制器本身不持有任何可变状态：所有状态都在调用方持有的 State 中，
// Tick 的结果以 Frame 返回，由调用方负责写入场景对象并通知各个信号消费者。
// 这样可以用合成时间戳重放任意一段动画做单元测试。
package timeline
