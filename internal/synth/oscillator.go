// Package synth 合成贺卡使用的全部音频（打字音、生日歌），不依赖任何音频文件。
//
// 生成器实现 beep.Streamer，最终通过 Render 转成 16-bit 小端立体声 PCM，
// 可直接交给 ebiten 的 audio.Context 播放。
package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator 固定频率、固定长度的波形发生器
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator 创建振荡器，freq<=0 时输出静音（用于休止符）
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		if o.freq > 0 {
			switch o.wave {
			case WaveSine:
				val = math.Sin(2 * math.Pi * o.phase)
			case WaveSquare:
				if o.phase < 0.5 {
					val = 1
				} else {
					val = -1
				}
			case WaveTriangle:
				val = 1 - 4*math.Abs(o.phase-0.5)
			}
			o.phase += o.freq / float64(o.rate)
			o.phase -= math.Floor(o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 简化的 attack/release 包络
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope 给 s 套上线性淡入淡出
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume 线性音量转换成 beep 的对数音量；vol<=0 时静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
