package synth

import (
	"bytes"
	"encoding/binary"

	"github.com/gopxl/beep"
)

// BytesPerFrame 每个立体声采样帧的字节数（2 声道 × 16-bit）
const BytesPerFrame = 4

// Render 把 streamer 渲染成 16-bit 小端立体声 PCM
// maxFrames 限制最多渲染的帧数，防止无限流（<=0 表示不限制）
func Render(s beep.Streamer, maxFrames int) []byte {
	var buf bytes.Buffer
	chunk := make([][2]float64, 512)
	frames := 0

	for maxFrames <= 0 || frames < maxFrames {
		want := chunk
		if maxFrames > 0 && maxFrames-frames < len(want) {
			want = want[:maxFrames-frames]
		}
		n, ok := s.Stream(want)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				_ = binary.Write(&buf, binary.LittleEndian, toPCM16(want[i][c]))
			}
		}
		frames += n
		if !ok {
			break
		}
	}
	return buf.Bytes()
}

// toPCM16 [-1,1] 浮点样本转换为 int16，超出范围的值会被截断
func toPCM16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// ClickPCM 生成打字音 PCM
func ClickPCM(sampleRate int, freq, volume float64) []byte {
	rate := beep.SampleRate(sampleRate)
	return Render(Click(rate, freq, volume), rate.N(clickDuration))
}

// MelodyPCM 生成生日歌 PCM
func MelodyPCM(sampleRate int, bpm, volume float64) []byte {
	rate := beep.SampleRate(sampleRate)
	return Render(Melody(rate, BirthdayTune, bpm, volume), rate.N(MelodyDuration(BirthdayTune, bpm)))
}
