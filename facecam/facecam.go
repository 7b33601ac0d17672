// Package facecam turns a local webcam into a pigface.FaceSource using
// OpenCV's YuNet face detector and a Haar eye cascade.
//
// The OpenCV backend needs the gocv build tag (and OpenCV installed).
// Without it, Open returns ErrUnavailable.
package facecam

import (
	"errors"
	"sync"
	"time"

	"github.com/phanxgames/pigface"
)

// ErrUnavailable is returned by Open when the binary was built without
// OpenCV support.
var ErrUnavailable = errors.New("facecam: built without gocv support")

// Config configures the camera source.
type Config struct {
	Device         int
	ModelPath      string  // YuNet ONNX model
	EyeCascade     string  // Haar eye cascade XML; empty disables blink scores
	ScoreThreshold float64 // minimum face score, default 0.6
	Width, Height  int     // detector input size, default 320x240
}

func (c Config) withDefaults() Config {
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = 0.6
	}
	if c.Width == 0 || c.Height == 0 {
		c.Width, c.Height = 320, 240
	}
	return c
}

// YuNet output row layout.
const (
	colBoxX      = 0
	colBoxY      = 1
	colBoxW      = 2
	colBoxH      = 3
	colRightEyeX = 4
	colRightEyeY = 5
	colLeftEyeX  = 6
	colLeftEyeY  = 7
	colNoseX     = 8
	colNoseY     = 9
	colScore     = 14
	faceCols     = 15
)

// face is one parsed YuNet detection in pixels.
type face struct {
	box      [4]float64
	rightEye pigface.Vec2
	leftEye  pigface.Vec2
	nose     pigface.Vec2
	score    float64
}

func parseFace(row []float32) (face, bool) {
	if len(row) < faceCols {
		return face{}, false
	}
	f := func(i int) float64 { return float64(row[i]) }
	return face{
		box:      [4]float64{f(colBoxX), f(colBoxY), f(colBoxW), f(colBoxH)},
		rightEye: pigface.Vec2{X: f(colRightEyeX), Y: f(colRightEyeY)},
		leftEye:  pigface.Vec2{X: f(colLeftEyeX), Y: f(colLeftEyeY)},
		nose:     pigface.Vec2{X: f(colNoseX), Y: f(colNoseY)},
		score:    f(colScore),
	}, true
}

// best returns the highest scoring face at or above threshold.
func best(faces []face, threshold float64) (face, bool) {
	var out face
	found := false
	for _, f := range faces {
		if f.score >= threshold && (!found || f.score > out.score) {
			out, found = f, true
		}
	}
	return out, found
}

// landmark normalizes the nose tip to image coordinates in [0, 1].
func (f face) landmark(imgW, imgH float64) pigface.Vec2 {
	return pigface.Vec2{X: clamp01(f.nose.X / imgW), Y: clamp01(f.nose.Y / imgH)}
}

// eyeROI returns a square around an eye center sized from the face box, in
// pixels: x, y, w, h.
func (f face) eyeROI(eye pigface.Vec2) [4]int {
	side := f.box[2] * 0.3
	return [4]int{
		int(eye.X - side/2), int(eye.Y - side/2), int(side), int(side),
	}
}

// blinkScore maps a Haar eye hit count in an eye ROI to a closure score:
// an open eye is found by the cascade, a closed one is not.
func blinkScore(hits int) float64 {
	if hits > 0 {
		return 0
	}
	return 1
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// latest holds the newest frame for the render goroutine.
type latest struct {
	mu    sync.Mutex
	frame pigface.FaceFrame
	have  bool
	start time.Time
}

func (l *latest) store(f pigface.FaceFrame) {
	l.mu.Lock()
	l.frame = f
	l.have = true
	l.mu.Unlock()
}

func (l *latest) get() (pigface.FaceFrame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame, l.have
}

// stamp returns the capture time relative to the first call.
func (l *latest) stamp(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.start.IsZero() {
		l.start = now
	}
	return now.Sub(l.start)
}
