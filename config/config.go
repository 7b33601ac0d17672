// Package config loads pigface settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/phanxgames/pigface"
)

// EnvPrefix prefixes every environment override, e.g. PIGFACE_GAZE_MAX_MOVE.
const EnvPrefix = "PIGFACE"

// Settings holds all application configuration.
type Settings struct {
	Gaze  GazeSettings  `mapstructure:"gaze"`
	Host  HostSettings  `mapstructure:"host"`
	Log   LogSettings   `mapstructure:"log"`
	Face  FaceSettings  `mapstructure:"face"`
	Audio AudioSettings `mapstructure:"audio"`
}

// Point is a YAML-friendly 2D point.
type Point struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// GazeSettings tunes the engine.
type GazeSettings struct {
	LeftRest       Point         `mapstructure:"left_rest"`
	RightRest      Point         `mapstructure:"right_rest"`
	MaxMove        float64       `mapstructure:"max_move"`
	Smoothing      float64       `mapstructure:"smoothing"`
	DirectionGain  float64       `mapstructure:"direction_gain"`
	Mirror         bool          `mapstructure:"mirror"`
	ReturnDuration time.Duration `mapstructure:"return_duration"`
	Easing         string        `mapstructure:"easing"`
	BlinkThreshold float64       `mapstructure:"blink_threshold"`
	BlinkHold      time.Duration `mapstructure:"blink_hold"`
}

// HostSettings configures the window or terminal.
type HostSettings struct {
	Kind   string  `mapstructure:"kind"` // window or term
	Title  string  `mapstructure:"title"`
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Scale  float64 `mapstructure:"scale"`
	Tilt   float64 `mapstructure:"tilt"` // degrees
}

// LogSettings configures logging.
type LogSettings struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    string `mapstructure:"file"`
}

// FaceSettings selects and configures the continuous input source.
type FaceSettings struct {
	Source       string `mapstructure:"source"` // none, feed or camera
	FeedAddr     string `mapstructure:"feed_addr"`
	FeedPath     string `mapstructure:"feed_path"`
	CameraDevice int    `mapstructure:"camera_device"`
	ModelPath    string `mapstructure:"model_path"`
	EyeCascade   string `mapstructure:"eye_cascade"`
}

// AudioSettings configures the oink.
type AudioSettings struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"` // linear gain
	File       string  `mapstructure:"file"`   // optional WAV replacing the grunt
}

// Default returns the default settings.
func Default() *Settings {
	g := pigface.DefaultConfig()
	return &Settings{
		Gaze: GazeSettings{
			LeftRest:       Point{g.LeftRest.X, g.LeftRest.Y},
			RightRest:      Point{g.RightRest.X, g.RightRest.Y},
			MaxMove:        g.MaxMove,
			Smoothing:      g.SmoothingFactor,
			DirectionGain:  g.DirectionGain,
			Mirror:         g.MirrorX,
			ReturnDuration: g.ReturnDuration,
			Easing:         "outElastic",
			BlinkThreshold: g.BlinkThreshold,
			BlinkHold:      g.BlinkHold,
		},
		Host: HostSettings{
			Kind:   "window",
			Title:  "Pig Face",
			Width:  640,
			Height: 640,
			Scale:  1,
		},
		Log: LogSettings{
			Level:   "info",
			Console: true,
		},
		Face: FaceSettings{
			Source:     "none",
			FeedAddr:   "127.0.0.1:8765",
			FeedPath:   "/face",
			ModelPath:  "models/face_detection_yunet.onnx",
			EyeCascade: "models/haarcascade_eye.xml",
		},
		Audio: AudioSettings{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     1,
		},
	}
}

// EngineConfig converts the gaze settings into a validated engine config.
func (g GazeSettings) EngineConfig() (pigface.Config, error) {
	fn, err := pigface.EasingByName(g.Easing)
	if err != nil {
		return pigface.Config{}, err
	}
	cfg := pigface.Config{
		LeftRest:        pigface.Vec2{X: g.LeftRest.X, Y: g.LeftRest.Y},
		RightRest:       pigface.Vec2{X: g.RightRest.X, Y: g.RightRest.Y},
		MaxMove:         g.MaxMove,
		SmoothingFactor: g.Smoothing,
		DirectionGain:   g.DirectionGain,
		MirrorX:         g.Mirror,
		ReturnDuration:  g.ReturnDuration,
		Easing:          fn,
		BlinkThreshold:  g.BlinkThreshold,
		BlinkHold:       g.BlinkHold,
	}
	if err := cfg.Validate(); err != nil {
		return pigface.Config{}, err
	}
	return cfg, nil
}

// New returns a viper instance with defaults, search paths and environment
// overrides set. An explicit path disables the search.
func New(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pigface")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pigface"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from file and environment. A missing file in
// the search path is not an error; a missing explicit file is.
func Load(path string) (*Settings, *viper.Viper, error) {
	v := New(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}
	s, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

func decode(v *viper.Viper) (*Settings, error) {
	s := Default()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// Watch re-reads the config file whenever it changes and hands the result
// to fn. fn runs on viper's watcher goroutine; hosts must hop back to their
// own loop before touching the engine.
func Watch(v *viper.Viper, fn func(*Settings, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(decode(v))
	})
	v.WatchConfig()
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("gaze.left_rest.x", s.Gaze.LeftRest.X)
	v.SetDefault("gaze.left_rest.y", s.Gaze.LeftRest.Y)
	v.SetDefault("gaze.right_rest.x", s.Gaze.RightRest.X)
	v.SetDefault("gaze.right_rest.y", s.Gaze.RightRest.Y)
	v.SetDefault("gaze.max_move", s.Gaze.MaxMove)
	v.SetDefault("gaze.smoothing", s.Gaze.Smoothing)
	v.SetDefault("gaze.direction_gain", s.Gaze.DirectionGain)
	v.SetDefault("gaze.mirror", s.Gaze.Mirror)
	v.SetDefault("gaze.return_duration", s.Gaze.ReturnDuration)
	v.SetDefault("gaze.easing", s.Gaze.Easing)
	v.SetDefault("gaze.blink_threshold", s.Gaze.BlinkThreshold)
	v.SetDefault("gaze.blink_hold", s.Gaze.BlinkHold)

	v.SetDefault("host.kind", s.Host.Kind)
	v.SetDefault("host.title", s.Host.Title)
	v.SetDefault("host.width", s.Host.Width)
	v.SetDefault("host.height", s.Host.Height)
	v.SetDefault("host.scale", s.Host.Scale)
	v.SetDefault("host.tilt", s.Host.Tilt)

	v.SetDefault("log.level", s.Log.Level)
	v.SetDefault("log.console", s.Log.Console)
	v.SetDefault("log.file", s.Log.File)

	v.SetDefault("face.source", s.Face.Source)
	v.SetDefault("face.feed_addr", s.Face.FeedAddr)
	v.SetDefault("face.feed_path", s.Face.FeedPath)
	v.SetDefault("face.camera_device", s.Face.CameraDevice)
	v.SetDefault("face.model_path", s.Face.ModelPath)
	v.SetDefault("face.eye_cascade", s.Face.EyeCascade)

	v.SetDefault("audio.enabled", s.Audio.Enabled)
	v.SetDefault("audio.sample_rate", s.Audio.SampleRate)
	v.SetDefault("audio.volume", s.Audio.Volume)
	v.SetDefault("audio.file", s.Audio.File)
}
