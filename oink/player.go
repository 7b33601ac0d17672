package oink

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

// ErrNotReady is returned by Play before Init succeeded.
var ErrNotReady = errors.New("oink: speaker not initialized")

// DefaultSampleRate is used when Config.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Config configures a Player.
type Config struct {
	SampleRate int
	Volume     float64 // linear gain; 0 means 1
	File       string  // optional WAV file replacing the synthesized grunt
}

// Player plays the oink. Each Play restarts the sound from the beginning,
// cutting off a grunt that is still playing. It is safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	sound   func() beep.Streamer
	mixer   *beep.Mixer
	current *beep.Ctrl
	ready   bool
	log     zerolog.Logger

	// speaker hooks, replaced in tests
	initSpeaker func(beep.SampleRate, int) error
	playSpeaker func(...beep.Streamer)
	lock        func()
	unlock      func()
}

// NewPlayer creates a player. When cfg.File is set the WAV is decoded and
// buffered up front.
func NewPlayer(cfg Config, log zerolog.Logger) (*Player, error) {
	rate := DefaultSampleRate
	if cfg.SampleRate > 0 {
		rate = beep.SampleRate(cfg.SampleRate)
	}
	vol := cfg.Volume
	if vol == 0 {
		vol = 1
	}
	p := &Player{
		rate:        rate,
		volume:      vol,
		mixer:       &beep.Mixer{},
		log:         log.With().Str("component", "oink").Logger(),
		initSpeaker: speaker.Init,
		playSpeaker: speaker.Play,
		lock:        speaker.Lock,
		unlock:      speaker.Unlock,
	}
	p.sound = func() beep.Streamer { return NewGrunt(rate) }

	if cfg.File != "" {
		buf, err := loadWAV(cfg.File, rate)
		if err != nil {
			return nil, err
		}
		p.sound = func() beep.Streamer { return buf.Streamer(0, buf.Len()) }
		p.log.Debug().Str("file", cfg.File).Dur("length", rate.D(buf.Len())).Msg("sound loaded")
	}
	return p, nil
}

// Init opens the audio device. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := p.initSpeaker(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("oink: init speaker: %w", err)
	}
	p.playSpeaker(p.mixer)
	p.ready = true
	p.log.Info().Int("sampleRate", int(p.rate)).Msg("audio ready")
	return nil
}

// Play starts the oink from the beginning.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return ErrNotReady
	}
	ctrl := &beep.Ctrl{Streamer: withVolume(p.sound(), p.volume)}

	p.lock()
	if p.current != nil {
		// A nil streamer drains the Ctrl so the mixer drops it.
		p.current.Streamer = nil
	}
	p.mixer.Add(ctrl)
	p.unlock()

	p.current = ctrl
	return nil
}

// Close silences playback. The speaker itself stays open for the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	p.current = nil
	p.ready = false
	return nil
}

func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oink: open sound: %w", err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("oink: decode %s: %w", path, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}
