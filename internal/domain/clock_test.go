package domain

import "testing"

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"08:00", 480},
		{"00:00", 0},
		{"23:59", 1439},
		{"9", 540},
		{"14", 840},
		{"", 480},
		{"not a time", 480},
		{"aa:bb", 480},
		{" 10:30 ", 630},
	}

	for _, tt := range tests {
		if got := ClockToMinutes(tt.in); got != tt.want {
			t.Errorf("ClockToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMinutesToClockRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		if got := ClockToMinutes(MinutesToClock(m)); got != m {
			t.Fatalf("round trip failed for %d: got %d", m, got)
		}
	}
}

func TestMinutesToClockPadding(t *testing.T) {
	if got := MinutesToClock(65); got != "01:05" {
		t.Errorf("MinutesToClock(65) = %q, want 01:05", got)
	}
}
