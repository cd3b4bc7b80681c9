package gas

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the raw bit patterns of every position and velocity.
// Two runs with the same world, count and seed must produce identical
// digests after the same number of ticks; run metadata records it so
// reproducibility can be checked after the fact.
func (s *Sim) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte

	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for i := range s.pos {
		write(s.pos[i].X)
		write(s.pos[i].Y)
	}
	for i := range s.vel {
		write(s.vel[i].X)
		write(s.vel[i].Y)
	}
	return h.Sum64()
}
