// Package stats provides small numeric helpers for gateway metrics.
package stats

import (
	"errors"
	"sort"
)

// ErrEmpty is returned when a computation needs at least one value.
var ErrEmpty = errors.New("stats: values must be non-empty")

// PercentileRank returns the midrank percentile (0..100) of v within
// values: the share of entries below v plus half the entries equal to
// it. The midrank method keeps duplicates from skewing the result.
func PercentileRank(values []float64, v float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	lo := sort.SearchFloat64s(sorted, v)
	hi := sort.Search(len(sorted), func(i int) bool { return sorted[i] > v })
	rank := float64(lo+hi) / 2
	return (rank / float64(len(sorted))) * 100, nil
}

// AveragePercentile returns the mean midrank percentile rank of each
// value within the slice itself.
func AveragePercentile(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	total := 0.0
	for _, v := range values {
		rank, err := PercentileRank(values, v)
		if err != nil {
			return 0, err
		}
		total += rank
	}
	return total / float64(len(values)), nil
}
