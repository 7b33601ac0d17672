package pigface

// DirectionSmoother low-pass filters a direction stream by exponential
// smoothing: current += (target - current) * Factor, per component.
// Smaller factors smooth harder and converge slower. The zero Factor never
// moves; use a value in (0, 1].
type DirectionSmoother struct {
	Factor  float64
	current DirectionVector
}

// NewDirectionSmoother returns a smoother starting at the center.
func NewDirectionSmoother(factor float64) DirectionSmoother {
	return DirectionSmoother{Factor: factor}
}

// Update advances one frame toward target and returns the new direction.
func (s *DirectionSmoother) Update(target DirectionVector) DirectionVector {
	s.current.X += (target.X - s.current.X) * s.Factor
	s.current.Y += (target.Y - s.current.Y) * s.Factor
	return s.current
}

// Current returns the smoothed direction without advancing.
func (s *DirectionSmoother) Current() DirectionVector {
	return s.current
}

// Reset returns the smoother to the center.
func (s *DirectionSmoother) Reset() {
	s.current = DirectionVector{}
}
