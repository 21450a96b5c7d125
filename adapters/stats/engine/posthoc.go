package engine

import (
	"math"

	"goquade/adapters/stats/distributions"
	"goquade/domain/core"
	"goquade/domain/quade"
)

// Comparator localizes which treatment pairs differ after a significant
// global result, using a Conover-style least significant difference on the
// weighted-rank treatment scores.
type Comparator struct {
	dist *distributions.Distributions
}

// NewComparator creates a new post-hoc comparator
func NewComparator() *Comparator {
	return &Comparator{dist: distributions.New()}
}

// Compare builds the pairwise |Ti[a]-Ti[b]| matrix and flags the pairs whose
// difference exceeds the critical value
//
//	cv = t_quantile(1 - alpha/2, dfDenom) * sqrt(2 * blocks * denom / dfDenom)
//
// Diffs is symmetric with a zero diagonal; Significant is populated strictly
// below the diagonal only. The comparator is normally invoked with the
// engine's outputs, where the preconditions hold by construction, but it
// checks them anyway so an independent caller fails cleanly.
func (c *Comparator) Compare(scores []float64, denom float64, blocks, dfDenom int, alpha float64) (*quade.MultipleComparison, error) {
	if dfDenom <= 0 {
		return nil, core.ErrComparatorPrecondition
	}
	if denom <= 0 {
		return nil, core.ErrComparatorPrecondition
	}
	if err := quade.ValidateAlpha(alpha); err != nil {
		return nil, err
	}
	if len(scores) < 2 {
		return nil, core.NewInvalidInputErrorf("need at least 2 treatment scores, got %d", len(scores))
	}

	n := len(scores)
	cv := c.dist.TQuantile(1-alpha/2, dfDenom) * math.Sqrt(2*float64(blocks)*denom/float64(dfDenom))

	diffs := make([][]float64, n)
	significant := make([][]bool, n)
	for a := 0; a < n; a++ {
		diffs[a] = make([]float64, n)
		significant[a] = make([]bool, n)
		for b := 0; b < n; b++ {
			diffs[a][b] = math.Abs(scores[a] - scores[b])
			if b < a {
				significant[a][b] = diffs[a][b] > cv
			}
		}
	}

	return &quade.MultipleComparison{
		Method:        quade.MethodQuadeConover,
		Diffs:         diffs,
		CriticalValue: cv,
		Significant:   significant,
	}, nil
}
