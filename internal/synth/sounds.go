package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	clickDuration = 28 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 20 * time.Millisecond
)

// Click 打字机的按键音：一个很短的方波脉冲
func Click(rate beep.SampleRate, freq, volume float64) beep.Streamer {
	osc := NewOscillator(freq, clickDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, clickDuration, clickAttack, clickRelease, rate)
	return withVolume(shaped, volume)
}

// Note 旋律中的一个音符
type Note struct {
	Semitone int     // 相对 A4 的半音数；Rest 表示休止符
	Beats    float64 // 时值（拍）
}

// Rest 休止符
const Rest = math.MinInt32

// Frequency 返回音符频率（十二平均律，A4 = 440Hz）
func (n Note) Frequency() float64 {
	if n.Semitone == Rest {
		return 0
	}
	return 440 * math.Pow(2, float64(n.Semitone)/12)
}

// 相对 A4 的半音数
const (
	noteC4  = -9
	noteD4  = -7
	noteE4  = -5
	noteF4  = -4
	noteG4  = -2
	noteA4  = 0
	noteBb4 = 1
	noteC5  = 3
)

// BirthdayTune 生日歌（F 大调）
var BirthdayTune = []Note{
	{noteC4, 0.75}, {noteC4, 0.25}, {noteD4, 1}, {noteC4, 1}, {noteF4, 1}, {noteE4, 2},
	{noteC4, 0.75}, {noteC4, 0.25}, {noteD4, 1}, {noteC4, 1}, {noteG4, 1}, {noteF4, 2},
	{noteC4, 0.75}, {noteC4, 0.25}, {noteC5, 1}, {noteA4, 1}, {noteF4, 1}, {noteE4, 1}, {noteD4, 2},
	{noteBb4, 0.75}, {noteBb4, 0.25}, {noteA4, 1}, {noteF4, 1}, {noteG4, 1}, {noteF4, 2},
	{Rest, 2},
}

// Melody 把音符序列合成为一段旋律
func Melody(rate beep.SampleRate, notes []Note, bpm, volume float64) beep.Streamer {
	if bpm <= 0 {
		bpm = 120
	}
	beat := time.Duration(float64(time.Minute) / bpm)

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		d := time.Duration(n.Beats * float64(beat))
		// 三角波加轻微八度泛音，听起来像八音盒
		tone := beep.Mix(
			withVolume(NewOscillator(n.Frequency(), d, WaveTriangle, rate), 0.8),
			withVolume(NewOscillator(2*n.Frequency(), d, WaveSine, rate), 0.2),
		)
		parts = append(parts, NewEnvelope(tone, d, 10*time.Millisecond, d/3, rate))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// MelodyDuration 返回旋律的总时长
func MelodyDuration(notes []Note, bpm float64) time.Duration {
	if bpm <= 0 {
		bpm = 120
	}
	var beats float64
	for _, n := range notes {
		beats += n.Beats
	}
	return time.Duration(beats * float64(time.Minute) / bpm)
}
