package pigface

import "testing"

func TestLayoutPartAt(t *testing.T) {
	cfg := DefaultConfig()
	l := DefaultLayout(cfg)
	cx := (cfg.LeftRest.X + cfg.RightRest.X) / 2
	cy := (cfg.LeftRest.Y + cfg.RightRest.Y) / 2
	rest := [EyeCount]Vec2{}

	tests := []struct {
		name    string
		p       Vec2
		offsets [EyeCount]Vec2
		want    Part
	}{
		{"left pupil at rest", cfg.LeftRest, rest, PartPupil},
		{"right eye white", cfg.RightRest.Add(Vec2{30, 0}), rest, PartEyeWhite},
		{"displaced pupil", cfg.RightRest.Add(Vec2{30, 0}), [EyeCount]Vec2{{}, {15, 0}}, PartPupil},
		{"behind displaced pupil", cfg.LeftRest.Add(Vec2{20, 0}), [EyeCount]Vec2{{-15, 0}, {}}, PartEyeWhite},
		{"nostril", Vec2{cx - 30, cy + 120}, rest, PartNostril},
		{"snout between nostrils", Vec2{cx, cy + 120}, rest, PartSnout},
		{"head below snout", Vec2{cx, cy + 220}, rest, PartHead},
		{"left ear", Vec2{cx - 170, cy - 210}, rest, PartEar},
		{"right ear", Vec2{cx + 170, cy - 210}, rest, PartEar},
		{"outside", Vec2{cx + 400, cy}, rest, PartNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.PartAt(tt.p, tt.offsets); got != tt.want {
				t.Errorf("PartAt(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDefaultLayoutContainsEyes(t *testing.T) {
	cfg := DefaultConfig()
	l := DefaultLayout(cfg)
	for i, eye := range l.Eyes {
		b := l.Bounds
		if eye.X < b.X || eye.X > b.X+b.Width || eye.Y < b.Y || eye.Y > b.Y+b.Height {
			t.Errorf("eye %d at %+v outside bounds %+v", i, eye, b)
		}
	}
	if l.EyeRadius-l.PupilRadius < cfg.MaxMove {
		t.Errorf("pupil can leave the eye: radius %v, pupil %v, max move %v",
			l.EyeRadius, l.PupilRadius, cfg.MaxMove)
	}
}
