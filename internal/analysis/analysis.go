// Package analysis computes aggregate quantities over recorded gas
// snapshots: speed distributions, summary statistics and an ideal-gas
// pressure estimate from wall impulse.
package analysis

import (
	"math"

	"github.com/san-kum/gassim/internal/gas"
)

// Speeds extracts the speed of every body in a snapshot.
func Speeds(snap gas.Snapshot) []float64 {
	out := make([]float64, len(snap.Vel))
	for i, v := range snap.Vel {
		out[i] = v.Norm()
	}
	return out
}

// SpeedStats summarizes a speed distribution.
type SpeedStats struct {
	Mean float64
	RMS  float64
	Max  float64
}

func Summarize(snap gas.Snapshot) SpeedStats {
	var st SpeedStats
	if len(snap.Vel) == 0 {
		return st
	}
	var sum, sumSq float64
	for _, v := range snap.Vel {
		s2 := v.Norm2()
		s := math.Sqrt(s2)
		sum += s
		sumSq += s2
		if s > st.Max {
			st.Max = s
		}
	}
	n := float64(len(snap.Vel))
	st.Mean = sum / n
	st.RMS = math.Sqrt(sumSq / n)
	return st
}

// Histogram bins the speeds of a snapshot into bins equal-width
// buckets spanning [0, max speed]. It returns the counts and the bin
// width. A zero-speed snapshot yields a single-bucket pile-up at 0.
func Histogram(snap gas.Snapshot, bins int) ([]float64, float64) {
	if bins <= 0 {
		bins = 1
	}
	counts := make([]float64, bins)
	speeds := Speeds(snap)

	max := 0.0
	for _, s := range speeds {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		counts[0] = float64(len(speeds))
		return counts, 0
	}

	width := max / float64(bins)
	for _, s := range speeds {
		b := int(s / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return counts, width
}

// Pressure estimates the 2D pressure (force per unit wall length) from
// the momentum delivered to the walls over elapsed simulation
// milliseconds.
func Pressure(st gas.Stats, w gas.World, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	perimeter := 2 * (w.Width + w.Height)
	return st.WallImpulse / elapsed / perimeter
}
