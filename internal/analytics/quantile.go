package analytics

import (
	"math"
	"sort"
)

// Quantile computes the q-th quantile of values using linear
// interpolation on the sorted copy. It reports false on empty input.
// q is clamped to [0, 1].
func Quantile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1], true
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower]), true
}
