// Package oink plays the pig's grunt through beep's speaker.
package oink

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// GruntDuration is the length of the synthesized oink.
const GruntDuration = 350 * time.Millisecond

// grunt is a nasal two-pulse oink: a falling sawtooth with a little breath
// noise, shaped by a double envelope.
type grunt struct {
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
	rng   *rand.Rand
}

// NewGrunt returns a fresh oink streamer at rate. Every call returns an
// independent streamer positioned at its start.
func NewGrunt(rate beep.SampleRate) beep.Streamer {
	return &grunt{
		rate:  rate,
		total: rate.N(GruntDuration),
		rng:   rand.New(rand.NewSource(7)),
	}
}

func (g *grunt) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.total)

		// Pitch falls from 210 Hz to 130 Hz.
		freq := 210 - 80*t
		saw := 2*g.phase - 1
		noise := g.rng.Float64()*2 - 1
		val := (0.8*saw + 0.2*noise) * gruntEnvelope(t) * 0.5

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *grunt) Err() error { return nil }

// gruntEnvelope is two snorts over t in [0, 1]; the second is softer. It is
// zero at both ends.
func gruntEnvelope(t float64) float64 {
	switch {
	case t < 0.45:
		return math.Sin(math.Pi * t / 0.45)
	case t < 0.55:
		return 0
	default:
		return 0.7 * math.Sin(math.Pi*(t-0.55)/0.45)
	}
}

// withVolume scales s by vol, where 1 is unchanged and 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
