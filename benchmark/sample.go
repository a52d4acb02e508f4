package benchmark

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// SampleSet accumulates float64 observations for one measured quantity.
// Values are append-only; insertion order carries no statistical meaning.
// Statistics are computed on demand, never cached.
//
// On an empty set every statistic returns NaN.
type SampleSet struct {
	values []float64
}

// Add appends one observation.
func (s *SampleSet) Add(v float64) {
	s.values = append(s.values, v)
}

// Merge appends every observation of other into s. Concatenation is
// commutative and associative under multiset equality, so per-worker sets
// can be folded in any order after the workers have joined.
func (s *SampleSet) Merge(other SampleSet) {
	s.values = append(s.values, other.values...)
}

// Count returns the number of observations.
func (s *SampleSet) Count() int {
	return len(s.values)
}

// Min returns the smallest observation.
func (s *SampleSet) Min() float64 {
	return orNaN(stats.Min(s.values))
}

// Max returns the largest observation.
func (s *SampleSet) Max() float64 {
	return orNaN(stats.Max(s.values))
}

// Avg returns the arithmetic mean.
func (s *SampleSet) Avg() float64 {
	return orNaN(stats.Mean(s.values))
}

// Stdev returns the population standard deviation (divide by N, not N-1).
func (s *SampleSet) Stdev() float64 {
	return orNaN(stats.StdDevP(s.values))
}

// Percentile returns the nearest-rank p-th percentile for p in [0,100]: the
// element at index floor((N-1) * p/100) of the ascending sort. Percentile(0)
// is the minimum and Percentile(100) the maximum. Every call sorts a copy of
// the observations; do not call this inside the measurement loop.
func (s *SampleSet) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(s.values))
	copy(sorted, s.values)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)-1) * p / 100.0)
	if idx < 0 || idx >= len(sorted) {
		return math.NaN()
	}
	return sorted[idx]
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}
