package synth

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want float64
	}{
		{"A4", Note{Semitone: noteA4}, 440},
		{"A5", Note{Semitone: 12}, 880},
		{"C5", Note{Semitone: noteC5}, 523.2511},
		{"rest", Note{Semitone: Rest}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.Frequency(); math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("Frequency() = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestMelodyDuration(t *testing.T) {
	// 27 拍，120 BPM 下每拍 0.5 秒
	if got := MelodyDuration(BirthdayTune, 120); got != 13500*time.Millisecond {
		t.Errorf("MelodyDuration = %v, want 13.5s", got)
	}
	if got := MelodyDuration(BirthdayTune, 0); got != 13500*time.Millisecond {
		t.Errorf("non-positive bpm should fall back to 120, got %v", got)
	}
}

func TestClickPCM(t *testing.T) {
	pcm := ClickPCM(48000, 1800, 0.5)

	// 28ms @ 48kHz = 1344 帧
	if want := 1344 * BytesPerFrame; len(pcm) != want {
		t.Fatalf("len = %d, want %d", len(pcm), want)
	}

	var peak int
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		t.Fatal("click is silent")
	}
	if peak > 32767/2+1 {
		t.Errorf("peak %d exceeds volume 0.5", peak)
	}
}

func TestRenderRespectsMaxFrames(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(440, time.Second, WaveSine, rate)

	if got := Render(osc, 100); len(got) != 100*BytesPerFrame {
		t.Errorf("len = %d, want %d", len(got), 100*BytesPerFrame)
	}
}

func TestRenderStopsWhenDrained(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSquare, rate)

	if got := Render(osc, 0); len(got) != rate.N(10*time.Millisecond)*BytesPerFrame {
		t.Errorf("len = %d, want %d", len(got), rate.N(10*time.Millisecond)*BytesPerFrame)
	}
}

func TestRestIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	pcm := Render(NewOscillator(0, 20*time.Millisecond, WaveSine, rate), 0)
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
}

func TestToPCM16(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-3, -32767},
	}
	for _, tt := range tests {
		if got := toPCM16(tt.in); got != tt.want {
			t.Errorf("toPCM16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMelodyPCMLength(t *testing.T) {
	pcm := MelodyPCM(8000, 240, 0.6)
	frames := len(pcm) / BytesPerFrame
	want := beep.SampleRate(8000).N(MelodyDuration(BirthdayTune, 240))

	// 每个音符单独取整，总帧数允许有少量误差
	if frames > want || want-frames > len(BirthdayTune) {
		t.Errorf("frames = %d, want about %d", frames, want)
	}
}
