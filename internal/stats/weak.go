package stats

import (
	"sort"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
)

// SelectWeakSquares picks the lowest-accuracy squares from aggregates,
// skipping squares that have never been missed.
func SelectWeakSquares(aggs []model.SquareAggregate, top int) []model.SquareAggregate {
	candidates := make([]model.SquareAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Square < candidates[j].Square
		}
		return ai < aj
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

func accuracy(agg model.SquareAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
