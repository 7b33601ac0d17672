package pigface

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero max move", func(c *Config) { c.MaxMove = 0 }},
		{"zero smoothing", func(c *Config) { c.SmoothingFactor = 0 }},
		{"smoothing above one", func(c *Config) { c.SmoothingFactor = 1.5 }},
		{"negative gain", func(c *Config) { c.DirectionGain = -1 }},
		{"zero return", func(c *Config) { c.ReturnDuration = 0 }},
		{"nil easing", func(c *Config) { c.Easing = nil }},
		{"threshold above one", func(c *Config) { c.BlinkThreshold = 1.1 }},
		{"negative hold", func(c *Config) { c.BlinkHold = -time.Millisecond }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigSmoothingOfOneIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmoothingFactor = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestConfigEyes(t *testing.T) {
	cfg := DefaultConfig()
	eyes := cfg.Eyes()
	if eyes[EyeLeft].Rest != cfg.LeftRest || eyes[EyeRight].Rest != cfg.RightRest {
		t.Errorf("eyes = %+v", eyes)
	}
	if cfg.Rest(EyeRight) != (Vec2{432, 405}) {
		t.Errorf("Rest(right) = %+v", cfg.Rest(EyeRight))
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "outElastic", "outBounce", "inOutElastic"} {
		fn, err := EasingByName(name)
		if err != nil || fn == nil {
			t.Errorf("EasingByName(%q) = %v, %v", name, fn, err)
		}
	}
	if _, err := EasingByName("wobbly"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown easing error = %v, want ErrInvalidConfig", err)
	}
}
