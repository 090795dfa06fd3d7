package game

import (
	"math"
	"testing"
)

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name string
		dts  []float64
		want float64
	}{
		{"empty", nil, 0},
		{"accumulates", []float64{0.25, 0.5, 0.25}, 1},
		{"ignores negative", []float64{0.5, -0.25, 0.5}, 1},
		{"ignores NaN", []float64{0.5, math.NaN(), 0.5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock()
			prev := c.Now()
			for _, dt := range tt.dts {
				now := c.Advance(dt)
				if now < prev {
					t.Fatalf("clock went backwards: %.3f -> %.3f", prev, now)
				}
				prev = now
			}
			if c.Now() != tt.want {
				t.Errorf("Now() = %.3f, want %.3f", c.Now(), tt.want)
			}
		})
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock()
	c.Advance(3)
	c.Reset()
	if c.Now() != 0 {
		t.Errorf("Now() after Reset = %.3f, want 0", c.Now())
	}
}
