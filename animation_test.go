package pigface

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func referenceElastic(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	return math.Pow(2, -10*x)*math.Sin((10*x-0.75)*(2*math.Pi/3)) + 1
}

func TestEaseOutElasticEndpoints(t *testing.T) {
	if got := EaseOutElastic(0); got != 0 {
		t.Errorf("ease(0) = %v, want exactly 0", got)
	}
	if got := EaseOutElastic(1); got != 1 {
		t.Errorf("ease(1) = %v, want exactly 1", got)
	}
}

func TestEaseOutElasticMatchesCurve(t *testing.T) {
	for i := 1; i < 100; i++ {
		x := float64(i) / 100
		got := EaseOutElastic(x)
		want := referenceElastic(x)
		// gween evaluates in float32.
		if math.Abs(got-want) > 1e-5 {
			t.Errorf("ease(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestEaseOutElasticOvershoots(t *testing.T) {
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = math.Max(peak, EaseOutElastic(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("peak = %v, want overshoot above 1", peak)
	}
}

func TestReturnFraction(t *testing.T) {
	r := StartReturn(2*time.Second, [EyeCount]Vec2{}, time.Second, nil)
	tests := []struct {
		now  time.Duration
		want float64
	}{
		{time.Second, 0},
		{2 * time.Second, 0},
		{2500 * time.Millisecond, 0.5},
		{3 * time.Second, 1},
		{10 * time.Second, 1},
	}
	for _, tt := range tests {
		assertNear(t, tt.now.String(), r.Fraction(tt.now), tt.want)
	}
}

func TestReturnSampleEndpoints(t *testing.T) {
	from := [EyeCount]Vec2{{9, -12}, {-15, 0}}
	r := StartReturn(0, from, time.Second, ease.OutElastic)

	got, f := r.Sample(0)
	if f != 0 || got != from {
		t.Errorf("Sample(0) = %+v, %v; want %+v, 0", got, f, from)
	}

	got, f = r.Sample(time.Second)
	if f != 1 || got != ([EyeCount]Vec2{}) {
		t.Errorf("Sample(end) = %+v, %v; want exact zero, 1", got, f)
	}
}

func TestReturnSampleMidway(t *testing.T) {
	from := [EyeCount]Vec2{{10, 0}, {0, -10}}
	r := StartReturn(0, from, time.Second, ease.OutElastic)

	got, _ := r.Sample(300 * time.Millisecond)
	p := referenceElastic(0.3)
	if math.Abs(got[EyeLeft].X-10*(1-p)) > 1e-4 {
		t.Errorf("left x = %v, want %v", got[EyeLeft].X, 10*(1-p))
	}
	if math.Abs(got[EyeRight].Y+10*(1-p)) > 1e-4 {
		t.Errorf("right y = %v, want %v", got[EyeRight].Y, -10*(1-p))
	}
}

func TestReturnCustomEasing(t *testing.T) {
	r := StartReturn(0, [EyeCount]Vec2{{8, 8}, {8, 8}}, time.Second, ease.Linear)
	got, _ := r.Sample(250 * time.Millisecond)
	assertVec(t, "linear quarter", got[EyeLeft], Vec2{6, 6})
}
