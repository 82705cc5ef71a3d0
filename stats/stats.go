package stats

import (
	"math"
	"sort"
)

// Metrics is a group of related statistics that are
// presented together
type Metrics map[string]interface{}

// Collector is implemented by all the types that expose
// statistics
type Collector interface {
	Stats() Metrics
}

// IntAverage returns the average of the samples, or 0 if
// there are none
func IntAverage(samples []int64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s)
	}

	return sum / float64(len(samples))
}

// IntPercentile returns the sample at percentile p, with p in
// [0, 100], using the nearest rank method. samples must be sorted
func IntPercentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}

	return sorted[rank-1]
}

func sortedCopy(samples []int64) []int64 {
	c := make([]int64, len(samples))
	copy(c, samples)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return c
}
