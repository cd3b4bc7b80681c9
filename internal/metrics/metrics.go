// Package metrics provides per-run observables over the gas simulation.
// Each type satisfies the runner.Metric interface.
package metrics

import (
	"math"

	"github.com/san-kum/gassim/internal/gas"
)

// KineticEnergy averages total kinetic energy (unit mass) over all
// observed ticks. An elastic gas should hold it roughly constant
// between wall bounces.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s *gas.Sim, t float64) {
	k.total += Kinetic(s.Snapshot())
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Kinetic is the total kinetic energy of a snapshot, unit mass.
func Kinetic(snap gas.Snapshot) float64 {
	ke := 0.0
	for _, v := range snap.Vel {
		ke += 0.5 * v.Norm2()
	}
	return ke
}

// Momentum tracks the magnitude of the net momentum vector at the last
// observed tick.
type Momentum struct {
	last float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(s *gas.Sim, t float64) {
	snap := s.Snapshot()
	var px, py float64
	for _, v := range snap.Vel {
		px += v.X
		py += v.Y
	}
	m.last = math.Sqrt(px*px + py*py)
}

func (m *Momentum) Value() float64 { return m.last }

func (m *Momentum) Reset() { m.last = 0 }

// CollisionRate reports pair collisions per tick over the observed
// window, from the Stats counter deltas.
type CollisionRate struct {
	first    gas.Stats
	last     gas.Stats
	hasFirst bool
}

func NewCollisionRate() *CollisionRate { return &CollisionRate{} }

func (c *CollisionRate) Name() string { return "collision_rate" }

func (c *CollisionRate) Observe(s *gas.Sim, t float64) {
	st := s.Stats()
	if !c.hasFirst {
		c.first = st
		c.hasFirst = true
	}
	c.last = st
}

func (c *CollisionRate) Value() float64 {
	if !c.hasFirst || c.last.Ticks == c.first.Ticks {
		return 0
	}
	ticks := float64(c.last.Ticks - c.first.Ticks)
	return float64(c.last.Collisions-c.first.Collisions) / ticks
}

func (c *CollisionRate) Reset() {
	c.first = gas.Stats{}
	c.last = gas.Stats{}
	c.hasFirst = false
}
