package gas

// Loop converts variable wall-clock frame deltas into fixed simulation
// ticks. Unconsumed time carries over in the lag accumulator, which a
// render adapter feeds to Extrapolate for smooth motion between ticks.
type Loop struct {
	sim *Sim
	lag float64
}

func NewLoop(s *Sim) *Loop {
	return &Loop{sim: s}
}

// Frame adds elapsed milliseconds to the accumulator and runs one Step
// per whole tick it contains, returning the number of ticks run. After
// Frame returns, 0 <= Lag() < TickDuration. A long stall produces a
// burst of ticks; there is no cap.
func (l *Loop) Frame(elapsed float64) int {
	l.lag += elapsed
	tick := l.sim.world.TickDuration

	steps := 0
	for l.lag >= tick {
		l.sim.Step()
		l.lag -= tick
		steps++
	}
	return steps
}

// Lag is the wall-clock remainder not yet consumed by ticks.
func (l *Loop) Lag() float64 {
	return l.lag
}

func (l *Loop) Sim() *Sim {
	return l.sim
}
