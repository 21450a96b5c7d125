package quade

import (
	"math"

	"goquade/domain/core"
)

// Matrix is a block-design observation matrix: rows are blocks (matched sets
// of measurements), columns are treatments. Callers own the backing slices;
// the engine never mutates them.
type Matrix [][]float64

// Rows returns the number of blocks
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of treatments (0 for an empty matrix)
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks the structural invariants required by the test:
// rectangular shape, at least 2 blocks and 2 treatments, all entries finite.
func (m Matrix) Validate() error {
	if m.Rows() < 2 {
		return core.NewInvalidInputErrorf("need at least 2 blocks, got %d", m.Rows())
	}
	cols := m.Cols()
	if cols < 2 {
		return core.NewInvalidInputErrorf("need at least 2 treatments, got %d", cols)
	}
	for i, row := range m {
		if len(row) != cols {
			return core.NewInvalidInputErrorf("matrix is not rectangular: row %d has %d entries, expected %d", i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return core.NewInvalidInputErrorf("non-finite value at block %d, treatment %d", i, j)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the matrix
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// ValidateAlpha checks that a significance level is strictly inside (0, 1)
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return core.NewInvalidInputErrorf("alpha must be in (0, 1), got %v", alpha)
	}
	return nil
}

// StatsResult is the immutable outcome of one Quade test invocation.
// INVARIANTS:
// - NObs == Blocks * Treatments
// - DFNumer == Treatments - 1, DFDenom == (Blocks-1)*(Treatments-1)
// - PValue in [0, 1]; it is the upper-tail probability of the F approximation
type StatsResult struct {
	NObs       int     `json:"n_obs"`
	Blocks     int     `json:"blocks"`
	Treatments int     `json:"treatments"`
	Statistic  float64 `json:"statistic"`
	DFNumer    int     `json:"df_numer"`
	DFDenom    int     `json:"df_denom"`
	PValue     float64 `json:"p_value"`
	Alpha      float64 `json:"alpha"`
	RejectNull bool    `json:"reject_null"`
}

// MethodQuadeConover labels the post-hoc procedure: a Conover-style least
// significant difference on the weighted-rank treatment scores.
const MethodQuadeConover = "quade-conover-lsd"

// MultipleComparison holds pairwise post-hoc results. Diffs is the full
// symmetric |Ti[a]-Ti[b]| matrix with zero diagonal; Significant is only
// meaningful strictly below the diagonal (each unordered pair reported once).
type MultipleComparison struct {
	Method        string      `json:"method"`
	Diffs         [][]float64 `json:"score_diffs"`
	CriticalValue float64     `json:"critical_value"`
	Significant   [][]bool    `json:"significant"`
}

// SignificantPairs returns the strictly-lower-triangle pairs flagged as
// significant, as (a, b) index pairs with a > b.
func (mc *MultipleComparison) SignificantPairs() [][2]int {
	var pairs [][2]int
	for a := 1; a < len(mc.Significant); a++ {
		for b := 0; b < a; b++ {
			if mc.Significant[a][b] {
				pairs = append(pairs, [2]int{a, b})
			}
		}
	}
	return pairs
}

// TestRun is the archived artifact of one test invocation
type TestRun struct {
	ID         core.RunID          `json:"id"`
	Dataset    string              `json:"dataset,omitempty"`
	Result     StatsResult         `json:"result"`
	Comparison *MultipleComparison `json:"comparison,omitempty"`
	CreatedAt  core.Timestamp      `json:"created_at"`
}
