package ranking

import (
	"sort"
)

// Ranks converts values to 1-indexed ranks, handling ties by averaging.
// Equal values receive the mean of the rank positions they jointly occupy,
// so the output always sums to n(n+1)/2. The input is not modified.
func Ranks(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range values {
		pairs[i] = pair{value: val, index: i}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)

	// Walk tie groups and assign the average rank to each member
	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0

		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}

		i = j
	}

	return ranks
}
