// Package gas implements the ideal-gas particle simulation core.
//
// A [Sim] owns the position and velocity arrays for a fixed set of
// circular bodies inside a rectangular [World]. One [Sim.Step] advances
// every body by the fixed tick duration, reflects and clamps bodies at
// the walls, then resolves every colliding pair with an elastic,
// equal-mass response and a soft positional push-apart. Pair checking
// is exhaustive; there is no broad phase.
//
// [Loop] drains wall-clock frame deltas into whole ticks and keeps the
// fractional remainder, which renderers pass to [Sim.Extrapolate] for
// motion interpolation:
//
//	loop := gas.NewLoop(sim)
//	loop.Frame(elapsedMillis)
//	p := sim.Extrapolate(i, loop.Lag())
//
// The core is single-threaded: Step runs to completion before control
// returns to the frame driver, and adapters read state without locking
// because there is never a concurrent writer.
package gas
