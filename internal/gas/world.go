package gas

import "fmt"

// Defaults mirror the classic ideal-gas demo setup: a 300x300 world of
// 400 bodies advanced in 20ms ticks, with velocities in pixels per
// millisecond.
const (
	DefaultWidth           = 300.0
	DefaultHeight          = 300.0
	DefaultRadius          = 5.0
	DefaultColRadiusFactor = 5.0
	DefaultTickDuration    = 20.0
	DefaultMaxSpeed        = 0.03
	DefaultBodies          = 400
)

// World holds the fixed parameters of a simulation. It is constructed
// once and never mutated afterwards.
type World struct {
	Width  float64
	Height float64

	// Radius is the body radius, uniform across all bodies.
	Radius float64

	// ColRadius is the collision threshold. The overlap test compares
	// the squared distance between two centers against this linear
	// value, so the effective interaction distance is sqrt(ColRadius).
	ColRadius float64

	// TickDuration is the fixed time quantum, in milliseconds, advanced
	// by one Step.
	TickDuration float64

	// MaxSpeed bounds each velocity component at init, in px/ms.
	MaxSpeed float64
}

func DefaultWorld() World {
	return World{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Radius:       DefaultRadius,
		ColRadius:    DefaultColRadiusFactor * DefaultRadius,
		TickDuration: DefaultTickDuration,
		MaxSpeed:     DefaultMaxSpeed,
	}
}

// Validate checks the construction contract the core itself does not
// defend against.
func (w World) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: dimensions %gx%g", ErrBadWorld, w.Width, w.Height)
	}
	if w.Radius <= 0 {
		return fmt.Errorf("%w: radius %g", ErrBadWorld, w.Radius)
	}
	if 2*w.Radius > w.Width || 2*w.Radius > w.Height {
		return fmt.Errorf("%w: radius %g does not fit %gx%g", ErrBadWorld, w.Radius, w.Width, w.Height)
	}
	if w.ColRadius <= 0 {
		return fmt.Errorf("%w: collision radius %g", ErrBadWorld, w.ColRadius)
	}
	if w.TickDuration <= 0 {
		return fmt.Errorf("%w: tick duration %g", ErrBadWorld, w.TickDuration)
	}
	if w.MaxSpeed < 0 {
		return fmt.Errorf("%w: max speed %g", ErrBadWorld, w.MaxSpeed)
	}
	return nil
}
