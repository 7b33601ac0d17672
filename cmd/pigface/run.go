package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/pigface"
	"github.com/phanxgames/pigface/config"
	"github.com/phanxgames/pigface/ebitenhost"
	"github.com/phanxgames/pigface/facecam"
	"github.com/phanxgames/pigface/facefeed"
	"github.com/phanxgames/pigface/internal/logging"
	"github.com/phanxgames/pigface/oink"
	"github.com/phanxgames/pigface/termhost"
)

// deps are the pieces both hosts share.
type deps struct {
	cfg     pigface.Config
	audio   pigface.AudioSink
	face    pigface.FaceSource
	reloads <-chan pigface.Config
	closers []func() error
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

// buildDeps wires audio, the face source and config reloads. Audio and
// face failures are logged and the pig runs without them.
func (a *app) buildDeps(ctx context.Context) (*deps, error) {
	s := a.settings
	cfg, err := s.Gaze.EngineConfig()
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	if s.Audio.Enabled {
		p, err := oink.NewPlayer(oink.Config{
			SampleRate: s.Audio.SampleRate,
			Volume:     s.Audio.Volume,
			File:       s.Audio.File,
		}, a.log)
		if err == nil {
			err = p.Init()
		}
		if err != nil {
			a.log.Warn().Err(err).Msg("audio unavailable, running silent")
		} else {
			d.audio = p
			d.closers = append(d.closers, p.Close)
		}
	}

	switch s.Face.Source {
	case "", "none":
	case "feed":
		srv := facefeed.NewServer(a.log)
		go func() {
			if err := srv.ListenAndServe(ctx, s.Face.FeedAddr, s.Face.FeedPath); err != nil {
				a.log.Error().Err(err).Msg("face feed stopped")
			}
		}()
		d.face = srv
	case "camera":
		cam, err := facecam.Open(facecam.Config{
			Device:     s.Face.CameraDevice,
			ModelPath:  s.Face.ModelPath,
			EyeCascade: s.Face.EyeCascade,
		}, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("camera unavailable")
			break
		}
		go func() {
			if err := cam.Run(ctx); err != nil {
				a.log.Error().Err(err).Msg("camera stopped")
			}
		}()
		d.face = cam
		d.closers = append(d.closers, cam.Close)
	default:
		d.close()
		return nil, fmt.Errorf("unknown face source %q", s.Face.Source)
	}

	if a.viper.ConfigFileUsed() != "" {
		d.reloads = a.watch()
	}
	return d, nil
}

// watch forwards valid config file changes to the host loop. Only the
// newest pending change is kept.
func (a *app) watch() <-chan pigface.Config {
	ch := make(chan pigface.Config, 1)
	config.Watch(a.viper, func(s *config.Settings, err error) {
		if err == nil {
			var cfg pigface.Config
			cfg, err = s.Gaze.EngineConfig()
			if err == nil {
				select {
				case <-ch:
				default:
				}
				ch <- cfg
				a.log.Info().Msg("config change queued")
				return
			}
		}
		a.log.Warn().Err(err).Msg("config change ignored")
	})
	return ch
}

func (a *app) runWindow(ctx context.Context) error {
	d, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	h := a.settings.Host
	g, err := ebitenhost.New(d.cfg, ebitenhost.Options{
		Title:   h.Title,
		Width:   int(float64(h.Width) * h.Scale),
		Height:  int(float64(h.Height) * h.Scale),
		Tilt:    h.Tilt,
		Audio:   d.audio,
		Face:    d.face,
		Reloads: d.reloads,
		Logger:  a.log,
	})
	if err != nil {
		return err
	}
	return g.Run()
}

func (a *app) runTerm(ctx context.Context) error {
	// Stderr output would scribble over the screen; keep only the file.
	if a.settings.Log.File == "" {
		a.log = zerolog.Nop()
	} else {
		log, closer, err := logging.New(logging.Config{
			Level: a.settings.Log.Level,
			File:  a.settings.Log.File,
			Out:   io.Discard,
		})
		if err != nil {
			return err
		}
		_ = a.logClose.Close()
		a.log, a.logClose = log, closer
	}

	d, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	h, err := termhost.New(screen, d.cfg, termhost.Options{
		Audio:   d.audio,
		Face:    d.face,
		Reloads: d.reloads,
		Logger:  a.log,
	})
	if err != nil {
		return err
	}
	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
