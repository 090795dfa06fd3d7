package utils

import "testing"

func TestKeyActionsAny(t *testing.T) {
	tests := []struct {
		name    string
		actions KeyActions
		want    bool
	}{
		{"none", KeyActions{}, false},
		{"confirm", KeyActions{Confirm: true}, true},
		{"pause", KeyActions{TogglePause: true}, true},
		{"blow", KeyActions{BlowCandle: true}, true},
		{"fireworks", KeyActions{Fireworks: true}, true},
		{"card", KeyActions{ToggleCard: true}, true},
		{"terminal", KeyActions{OpenTerminal: true}, true},
		{"close", KeyActions{Close: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actions.Any(); got != tt.want {
				t.Errorf("Any() = %v, want %v", got, tt.want)
			}
		})
	}
}
