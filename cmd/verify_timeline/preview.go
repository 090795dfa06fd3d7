package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/birthdaycard/pkg/timeline"
)

// labelWidth 左侧标签列宽（显示宽度，中文占 2 列）
const labelWidth = 14

// segmentRow 时间轴上的一段
type segmentRow struct {
	Label string
	Start float64
	End   float64
}

// segmentRows 按推导出的时间表列出所有分段
func segmentRows(s timeline.Schedule) []segmentRow {
	return []segmentRow{
		{"蛋糕下落", 0, s.CakeDuration},
		{"桌子滑入", s.TableSlideStart, s.TableSlideEnd},
		{"背景淡出", s.FadeStart, s.FadeEnd},
		{"蜡烛落下", s.CandleDropStart, s.TotalDuration},
	}
}

// barSpan 把 [start, end] 映射到 width 列的区间 [x0, x1)，至少占 1 列
func barSpan(start, end, total float64, width int) (x0, x1 int) {
	if total <= 0 || width <= 0 {
		return 0, 0
	}
	x0 = int(math.Floor(start / total * float64(width)))
	x1 = int(math.Ceil(end / total * float64(width)))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if x1 <= x0 && x0 < width {
		x1 = x0 + 1
	}
	return x0, x1
}

// padLabel 按显示宽度截断或补齐标签
func padLabel(s string, width int) string {
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}

// playback 预览的播放状态，使用与场景相同的 Tick 协议
type playback struct {
	ctrl    *timeline.Controller
	state   timeline.State
	now     float64
	playing bool
	frame   timeline.Frame
}

func newPlayback(ctrl *timeline.Controller) *playback {
	p := &playback{ctrl: ctrl, playing: true}
	p.restart()
	return p
}

func (p *playback) restart() {
	p.state = timeline.NewState()
	p.now = 0
	p.playing = true
	p.frame = p.ctrl.Tick(&p.state, p.now, p.playing)
}

func (p *playback) togglePause() {
	p.playing = !p.playing
}

func (p *playback) advance(dt float64) {
	p.now += dt
	p.frame = p.ctrl.Tick(&p.state, p.now, p.playing)
}

// drawPreview 绘制分段条、播放头和当前数值
func drawPreview(screen tcell.Screen, ctrl *timeline.Controller, frame timeline.Frame, playing bool) {
	w, _ := screen.Size()
	sched := ctrl.Schedule()
	barWidth := w - labelWidth - 2
	if barWidth < 10 {
		barWidth = 10
	}

	title := fmt.Sprintf("timeline  total=%.2fs  t=%.2fs", sched.TotalDuration, frame.Elapsed)
	if !playing {
		title += "  [paused]"
	}
	drawText(screen, 0, 0, title, tcell.StyleDefault.Bold(true))

	barStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for i, row := range segmentRows(sched) {
		y := 2 + i
		drawText(screen, 0, y, padLabel(row.Label, labelWidth), tcell.StyleDefault)
		x0, x1 := barSpan(row.Start, row.End, sched.TotalDuration, barWidth)
		for x := x0; x < x1; x++ {
			screen.SetContent(labelWidth+x, y, '█', nil, barStyle)
		}
	}

	// 播放头
	head, _ := barSpan(frame.Elapsed, frame.Elapsed, sched.TotalDuration, barWidth)
	if head >= barWidth {
		head = barWidth - 1
	}
	headStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for y := 2; y < 2+len(segmentRows(sched)); y++ {
		screen.SetContent(labelWidth+head, y, '│', nil, headStyle)
	}

	y := 3 + len(segmentRows(sched))
	drawGauge(screen, y, "遮罩", frame.Opacity, barWidth)
	drawGauge(screen, y+1, "环境", frame.Progress, barWidth)

	if frame.Poses != nil {
		p := frame.Poses
		drawText(screen, 0, y+3, fmt.Sprintf("cake y=%.3f rot=%.3f  table z=%.3f  candle y=%.3f visible=%v",
			p.Cake.Position.Y, p.Cake.Rotation.Y, p.Table.Position.Z, p.Candle.Position.Y, p.Candle.Visible), tcell.StyleDefault)
	}
	if frame.Completed {
		drawText(screen, 0, y+4, "completed", tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}
	drawText(screen, 0, y+6, "Space: pause  R: restart  Q: quit", tcell.StyleDefault.Dim(true))
}

func drawGauge(screen tcell.Screen, y int, label string, value float64, width int) {
	drawText(screen, 0, y, padLabel(fmt.Sprintf("%s %.2f", label, value), labelWidth), tcell.StyleDefault)
	filled := int(math.Round(value * float64(width)))
	for x := 0; x < width; x++ {
		r := '·'
		if x < filled {
			r = '▓'
		}
		screen.SetContent(labelWidth+x, y, r, nil, tcell.StyleDefault)
	}
}

// drawText 按显示宽度逐字符写入，返回结束列
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// dumpSamples 以固定间隔采样并输出表格
// 最后一行总是完成帧（使用精确的终点位姿）
func dumpSamples(out io.Writer, ctrl *timeline.Controller, step float64) error {
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %.3f", step)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"t", "cake.y", "cake.rot", "table.z", "candle.y", "candle", "opacity", "progress", "emit"}, "\t"))

	st := timeline.NewState()
	total := ctrl.Schedule().TotalDuration
	for i := 0; ; i++ {
		now := float64(i) * step
		if now > total {
			now = total
		}
		f := ctrl.Tick(&st, now, true)
		if f.Poses != nil {
			p := f.Poses
			fmt.Fprintf(tw, "%.2f\t%.3f\t%.3f\t%.3f\t%.3f\t%v\t%.3f\t%.3f\t%v\n",
				f.Elapsed, p.Cake.Position.Y, p.Cake.Rotation.Y, p.Table.Position.Z,
				p.Candle.Position.Y, p.Candle.Visible, f.Opacity, f.Progress, f.EmitSignals)
		}
		if f.Completed {
			break
		}
	}
	return tw.Flush()
}
