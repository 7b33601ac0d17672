package pigface

import (
	"testing"
	"time"
)

func TestBlinkDetectorHold(t *testing.T) {
	tests := []struct {
		name  string
		held  time.Duration
		fires bool
	}{
		{"short", 999 * time.Millisecond, false},
		{"exactly hold", time.Second, false},
		{"just over", 1001 * time.Millisecond, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBlinkDetector(0.5, time.Second)
			if b.Update(0.9, 0.9, 0) {
				t.Fatal("fired on first frame")
			}
			if got := b.Update(0.9, 0.9, tt.held); got != tt.fires {
				t.Errorf("fired = %v, want %v", got, tt.fires)
			}
		})
	}
}

func TestBlinkDetectorFiresOncePerEpisode(t *testing.T) {
	b := NewBlinkDetector(0.5, time.Second)
	fired := 0
	for now := time.Duration(0); now <= 3*time.Second; now += 100 * time.Millisecond {
		if b.Update(0.8, 0.2, now) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
	if !b.Triggered() || !b.Blinking() {
		t.Errorf("blinking=%v triggered=%v, want both", b.Blinking(), b.Triggered())
	}
}

func TestBlinkDetectorRearms(t *testing.T) {
	b := NewBlinkDetector(0.5, time.Second)
	b.Update(0.9, 0.9, 0)
	if !b.Update(0.9, 0.9, 1100*time.Millisecond) {
		t.Fatal("first episode did not fire")
	}

	// Opening the eyes ends the episode.
	b.Update(0.1, 0.1, 1200*time.Millisecond)
	if b.Blinking() || b.Triggered() {
		t.Fatal("episode not reset after opening")
	}

	b.Update(0.9, 0.9, 2*time.Second)
	if b.Update(0.9, 0.9, 2500*time.Millisecond) {
		t.Error("second episode fired early")
	}
	if !b.Update(0.9, 0.9, 3100*time.Millisecond) {
		t.Error("second episode did not fire")
	}
}

func TestBlinkDetectorThresholdIsExclusive(t *testing.T) {
	b := NewBlinkDetector(0.5, 0)
	b.Update(0.5, 0.5, 0)
	if b.Blinking() {
		t.Error("score equal to threshold started an episode")
	}
	b.Update(0.5, 0.51, 0)
	if !b.Blinking() {
		t.Error("one eye above threshold should start an episode")
	}
}

func TestBlinkDetectorReset(t *testing.T) {
	b := NewBlinkDetector(0.5, time.Second)
	b.Update(0.9, 0.9, 0)
	b.Reset()
	if b.Blinking() {
		t.Fatal("Reset left episode running")
	}
	// The hold restarts from the next frame.
	b.Update(0.9, 0.9, 900*time.Millisecond)
	if b.Update(0.9, 0.9, 1500*time.Millisecond) {
		t.Error("fired before a full hold after Reset")
	}
}
