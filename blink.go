package pigface

import "time"

// BlinkDetector turns per-frame blink scores into a one-shot gesture: a
// blink held longer than Hold fires once, and opening the eyes re-arms it.
//
//	NotBlinking -> Blinking -> (Triggered | NotBlinking)
type BlinkDetector struct {
	Threshold float64       // a score above this counts as a blink
	Hold      time.Duration // the episode must last strictly longer than this

	blinking  bool
	start     time.Duration
	triggered bool
}

// NewBlinkDetector returns a detector with the given threshold and hold.
func NewBlinkDetector(threshold float64, hold time.Duration) BlinkDetector {
	return BlinkDetector{Threshold: threshold, Hold: hold}
}

// Update feeds one frame. It reports true on the single frame that fires the
// gesture for the current episode.
func (b *BlinkDetector) Update(left, right float64, now time.Duration) bool {
	if left <= b.Threshold && right <= b.Threshold {
		b.blinking = false
		b.triggered = false
		return false
	}

	if !b.blinking {
		b.blinking = true
		b.start = now
		b.triggered = false
	}
	if !b.triggered && now-b.start > b.Hold {
		b.triggered = true
		return true
	}
	return false
}

// Blinking reports whether a blink episode is in progress.
func (b *BlinkDetector) Blinking() bool {
	return b.blinking
}

// Triggered reports whether the current episode already fired.
func (b *BlinkDetector) Triggered() bool {
	return b.triggered
}

// Reset forgets any episode in progress.
func (b *BlinkDetector) Reset() {
	b.blinking = false
	b.triggered = false
	b.start = 0
}
