package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/pigface"
)

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	cfg, err := Default().Gaze.EngineConfig()
	require.NoError(t, err)

	want := pigface.DefaultConfig()
	assert.Equal(t, want.LeftRest, cfg.LeftRest)
	assert.Equal(t, want.RightRest, cfg.RightRest)
	assert.Equal(t, want.MaxMove, cfg.MaxMove)
	assert.Equal(t, want.SmoothingFactor, cfg.SmoothingFactor)
	assert.Equal(t, want.ReturnDuration, cfg.ReturnDuration)
	assert.Equal(t, want.BlinkHold, cfg.BlinkHold)
	assert.NotNil(t, cfg.Easing)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pig.yaml")
	data := `
gaze:
  max_move: 20
  smoothing: 0.25
  easing: outBounce
  return_duration: 500ms
host:
  kind: term
face:
  source: feed
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, v, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, 20.0, s.Gaze.MaxMove)
	assert.Equal(t, 0.25, s.Gaze.Smoothing)
	assert.Equal(t, "outBounce", s.Gaze.Easing)
	assert.Equal(t, 500*time.Millisecond, s.Gaze.ReturnDuration)
	assert.Equal(t, "term", s.Host.Kind)
	assert.Equal(t, "feed", s.Face.Source)

	// Untouched keys keep their defaults.
	assert.Equal(t, 284.0, s.Gaze.LeftRest.X)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)

	s, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gaze:\n  max_move: 20\n"), 0o644))
	t.Setenv("PIGFACE_GAZE_MAX_MOVE", "30")
	t.Setenv("PIGFACE_LOG_LEVEL", "debug")

	s, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.Gaze.MaxMove)
	assert.Equal(t, "debug", s.Log.Level)
}

func TestEngineConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GazeSettings)
	}{
		{"unknown easing", func(g *GazeSettings) { g.Easing = "wobble" }},
		{"negative max move", func(g *GazeSettings) { g.MaxMove = -1 }},
		{"smoothing above one", func(g *GazeSettings) { g.Smoothing = 1.5 }},
		{"zero return", func(g *GazeSettings) { g.ReturnDuration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default().Gaze
			tt.modify(&g)
			_, err := g.EngineConfig()
			assert.Error(t, err)
		})
	}
}
