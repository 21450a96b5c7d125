package engine

import (
	"github.com/montanaflynn/stats"

	"goquade/adapters/stats/distributions"
	"goquade/adapters/stats/ranking"
	"goquade/domain/core"
	"goquade/domain/quade"
)

// QuadeEngine computes the Quade weighted-rank statistic for an unreplicated
// complete block design. The computation is a pure function of the matrix:
// no shared state, no mutation of caller data.
type QuadeEngine struct {
	dist *distributions.Distributions
}

// NewQuadeEngine creates a new Quade statistic engine
func NewQuadeEngine() *QuadeEngine {
	return &QuadeEngine{dist: distributions.New()}
}

// Computation carries every derived quantity of one engine run. Scores and
// Denominator are what the post-hoc comparator consumes.
type Computation struct {
	RankMatrix   [][]float64 // within-block tied ranks, 1..c per row
	BlockWeights []float64   // tied ranks of the block ranges, 1..r
	Scores       []float64   // Ti: column sums of weighted centered ranks
	Statistic    float64     // W
	DFNumer      int         // c - 1
	DFDenom      int         // (r-1)(c-1)
	PValue       float64     // upper-tail F probability
	Denominator  float64     // T4: total weighted-rank variability minus T3
}

// Compute runs the full Quade pipeline on a validated matrix:
//
//  1. rank each block's treatments with ties averaged
//  2. rank the block ranges to get block weights Q
//  3. center ranks on (c+1)/2 and scale by Q
//  4. sum columns into treatment scores Ti
//  5. W = (r-1) * (sum Ti^2 / r) / (sum rij^2 - sum Ti^2 / r)
//
// The p-value is the upper tail of F(W; c-1, (r-1)(c-1)). When the
// denominator term collapses to zero (no variability among weighted ranks)
// the statistic is a 0/0 form and Compute fails with ErrUndefinedStatistic
// instead of returning NaN or Inf.
func (e *QuadeEngine) Compute(x quade.Matrix) (*Computation, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	r := x.Rows()
	c := x.Cols()

	// Within-block ranks
	rankMatrix := make([][]float64, r)
	for i := 0; i < r; i++ {
		rankMatrix[i] = ranking.Ranks(x[i])
	}

	// Block ranges, then their ranks as weights
	ranges := make([]float64, r)
	for i := 0; i < r; i++ {
		max, err := stats.Max(x[i])
		if err != nil {
			return nil, core.NewInvalidInputErrorf("block %d: %v", i, err)
		}
		min, err := stats.Min(x[i])
		if err != nil {
			return nil, core.NewInvalidInputErrorf("block %d: %v", i, err)
		}
		ranges[i] = max - min
	}
	weights := ranking.Ranks(ranges)

	// Weighted centered ranks and treatment scores
	center := float64(c+1) / 2.0
	scores := make([]float64, c)
	var sumSq float64 // sum of rij^2 over all cells
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rij := (rankMatrix[i][j] - center) * weights[i]
			scores[j] += rij
			sumSq += rij * rij
		}
	}

	var t2 float64
	for _, ti := range scores {
		t2 += ti * ti
	}
	t3 := t2 / float64(r)
	t4 := sumSq - t3

	if t4 <= 0 {
		return nil, core.ErrUndefinedStatistic
	}

	k := r - 1
	w := float64(k) * t3 / t4
	dfNumer := c - 1
	dfDenom := dfNumer * k

	return &Computation{
		RankMatrix:   rankMatrix,
		BlockWeights: weights,
		Scores:       scores,
		Statistic:    w,
		DFNumer:      dfNumer,
		DFDenom:      dfDenom,
		PValue:       e.dist.FUpperTail(w, dfNumer, dfDenom),
		Denominator:  t4,
	}, nil
}
