package gas

import (
	"math"
	"math/rand"

	"github.com/san-kum/gassim/internal/vec"
)

// smooth and offset bound the collision denominator away from zero so
// two coincident bodies produce a large but finite response instead of
// a division fault.
const (
	smooth = 1e-4
	offset = 5e-4
)

// correction is the fraction of ColRadius used for the soft positional
// push-apart on collision.
const correction = 0.7

// Stats accumulates counters across ticks. WallImpulse is the total
// momentum transferred to the walls (unit mass), the basis for the
// pressure estimate.
type Stats struct {
	Ticks       uint64
	Collisions  uint64
	WallBounces uint64
	WallImpulse float64
}

// Sim is the mutable simulation state: parallel position and velocity
// slices for a fixed number of bodies. It is the sole owner of that
// state; render adapters only read it. Not safe for concurrent use,
// and Step is not reentrant.
type Sim struct {
	world World
	pos   []vec.Vec2
	vel   []vec.Vec2
	stats Stats
}

// New allocates a simulation of n bodies with independent uniform
// random positions in [Radius, dim-Radius] per axis and velocity
// components in [-MaxSpeed, MaxSpeed], drawn from the injected
// generator. Seed the generator for reproducible runs.
func New(w World, n int, rng *rand.Rand) (*Sim, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, ErrBadCount
	}

	s := &Sim{
		world: w,
		pos:   make([]vec.Vec2, n),
		vel:   make([]vec.Vec2, n),
	}
	for i := range s.pos {
		s.pos[i] = vec.New(
			uniform(rng, w.Radius, w.Width-w.Radius),
			uniform(rng, w.Radius, w.Height-w.Radius),
		)
	}
	for i := range s.vel {
		s.vel[i] = vec.New(
			uniform(rng, -w.MaxSpeed, w.MaxSpeed),
			uniform(rng, -w.MaxSpeed, w.MaxSpeed),
		)
	}
	return s, nil
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

// Step advances the simulation by exactly one tick: every body is
// integrated and boundary-corrected first, then every unordered pair
// is checked and resolved. Collision response therefore always sees
// post-boundary state for the current tick.
func (s *Sim) Step() {
	dt := s.world.TickDuration
	for i := range s.pos {
		s.pos[i] = s.pos[i].Add(s.vel[i].Scale(dt))
		s.keepInBounds(i)
	}
	for i := 1; i < len(s.pos); i++ {
		for j := 0; j < i; j++ {
			if s.colliding(i, j) {
				s.resolvePair(i, j)
			}
		}
	}
	s.stats.Ticks++
}

// keepInBounds reflects the velocity component of any body at or past a
// wall and clamps the position back into the playfield. The clamp runs
// unconditionally, which guards against tunneling in a single tick.
func (s *Sim) keepInBounds(i int) {
	w := s.world
	p, v := s.pos[i], s.vel[i]

	if p.X <= w.Radius || p.X >= w.Width-w.Radius {
		s.stats.WallBounces++
		s.stats.WallImpulse += 2 * math.Abs(v.X)
		v.X = -v.X
	}
	if p.Y <= w.Radius || p.Y >= w.Height-w.Radius {
		s.stats.WallBounces++
		s.stats.WallImpulse += 2 * math.Abs(v.Y)
		v.Y = -v.Y
	}

	p.X = clamp(w.Radius, w.Width-w.Radius, p.X)
	p.Y = clamp(w.Radius, w.Height-w.Radius, p.Y)
	s.pos[i], s.vel[i] = p, v
}

func clamp(low, high, x float64) float64 {
	return math.Max(low, math.Min(high, x))
}

// colliding compares the squared center distance against the linear
// ColRadius threshold. The asymmetry is deliberate and load-bearing:
// the effective interaction distance is sqrt(ColRadius), and the
// collision impulse depends on it.
func (s *Sim) colliding(i, j int) bool {
	return s.pos[i].Sub(s.pos[j]).Norm2() <= s.world.ColRadius
}

// resolvePair applies the symmetric elastic response to both bodies.
// Both halves are computed from the same pre-state and committed
// afterwards, so the commit order cannot affect either result.
func (s *Sim) resolvePair(i, j int) {
	v1, v2 := s.vel[i], s.vel[j]
	p1, p2 := s.pos[i], s.pos[j]

	nv1, np1 := bounce(v1, v2, p1, p2, s.world.ColRadius)
	nv2, np2 := bounce(v2, v1, p2, p1, s.world.ColRadius)

	s.vel[i], s.pos[i] = nv1, np1
	s.vel[j], s.pos[j] = nv2, np2
	s.stats.Collisions++
}

// bounce computes one side of the pair response. With
// u = (d + offset) / (|d|^2 + smooth), the velocity update
// v - d*Dot(v1-v2, u) is the equal-mass elastic exchange along the
// separation axis, and the position gains a soft push of
// correction*ColRadius/|d| outward.
func bounce(v1, v2, p1, p2 vec.Vec2, colRad float64) (vec.Vec2, vec.Vec2) {
	d := p1.Sub(p2)
	u := d.Add(vec.New(offset, offset)).Scale(1 / (d.Norm2() + smooth))
	vel := v1.Sub(d.Scale(v1.Sub(v2).Dot(u)))
	pos := p1.Add(u.Scale(colRad * correction))
	return vel, pos
}

func (s *Sim) Len() int     { return len(s.pos) }
func (s *Sim) World() World { return s.world }
func (s *Sim) Stats() Stats { return s.stats }

func (s *Sim) Pos(i int) vec.Vec2 { return s.pos[i] }
func (s *Sim) Vel(i int) vec.Vec2 { return s.vel[i] }

// Extrapolate returns the render position of body i advanced by lag
// milliseconds past the last completed tick. Used for motion
// interpolation between ticks; it never mutates the store.
func (s *Sim) Extrapolate(i int, lag float64) vec.Vec2 {
	return s.pos[i].Add(s.vel[i].Scale(lag))
}

// Valid reports whether every position and velocity is finite.
func (s *Sim) Valid() bool {
	for i := range s.pos {
		if !s.pos[i].IsFinite() || !s.vel[i].IsFinite() {
			return false
		}
	}
	return true
}

// Snapshot is an immutable copy of the body state at some tick.
type Snapshot struct {
	Pos []vec.Vec2
	Vel []vec.Vec2
}

func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Pos: make([]vec.Vec2, len(s.pos)),
		Vel: make([]vec.Vec2, len(s.vel)),
	}
	copy(snap.Pos, s.pos)
	copy(snap.Vel, s.vel)
	return snap
}
