package engine

import (
	"errors"
	"math"
	"testing"

	"goquade/domain/core"
)

func sampleComparison(t *testing.T) *Comparator {
	t.Helper()
	return NewComparator()
}

func TestComparator_SampleDataset(t *testing.T) {
	c := sampleComparison(t)

	scores := []float64{33, 51, -18, -36, -30}
	denom := 3590.0 / 7.0

	mc, err := c.Compare(scores, denom, 7, 24, 0.05)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if math.Abs(mc.CriticalValue-35.6980875) > 1e-6 {
		t.Errorf("critical value = %v, want 35.6980875", mc.CriticalValue)
	}
	if mc.Method != "quade-conover-lsd" {
		t.Errorf("method = %q", mc.Method)
	}

	wantSig := map[[2]int]bool{
		{2, 0}: true, {2, 1}: true,
		{3, 0}: true, {3, 1}: true,
		{4, 0}: true, {4, 1}: true,
	}
	for a := 0; a < len(scores); a++ {
		for b := 0; b < a; b++ {
			want := wantSig[[2]int{a, b}]
			if mc.Significant[a][b] != want {
				t.Errorf("Significant[%d][%d] = %v, want %v", a, b, mc.Significant[a][b], want)
			}
		}
	}
}

func TestComparator_DiffMatrixShape(t *testing.T) {
	c := sampleComparison(t)

	scores := []float64{33, 51, -18, -36, -30}
	mc, err := c.Compare(scores, 3590.0/7.0, 7, 24, 0.05)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	n := len(scores)
	for a := 0; a < n; a++ {
		if mc.Diffs[a][a] != 0 {
			t.Errorf("diagonal Diffs[%d][%d] = %v, want 0", a, a, mc.Diffs[a][a])
		}
		for b := 0; b < n; b++ {
			if mc.Diffs[a][b] != mc.Diffs[b][a] {
				t.Errorf("Diffs not symmetric at (%d, %d)", a, b)
			}
			// The flag matrix is only populated strictly below the diagonal
			if b >= a && mc.Significant[a][b] {
				t.Errorf("Significant[%d][%d] set outside lower triangle", a, b)
			}
		}
	}
}

func TestComparator_Preconditions(t *testing.T) {
	c := sampleComparison(t)
	scores := []float64{1, 2, 3}

	if _, err := c.Compare(scores, 100, 5, 0, 0.05); !errors.Is(err, core.ErrComparatorPrecondition) {
		t.Errorf("dfDenom=0: expected precondition error, got %v", err)
	}
	if _, err := c.Compare(scores, 0, 5, 8, 0.05); !errors.Is(err, core.ErrComparatorPrecondition) {
		t.Errorf("denom=0: expected precondition error, got %v", err)
	}
	if _, err := c.Compare(scores, -1, 5, 8, 0.05); !errors.Is(err, core.ErrComparatorPrecondition) {
		t.Errorf("denom<0: expected precondition error, got %v", err)
	}
	if _, err := c.Compare(scores, 100, 5, 8, 1.5); !core.IsInvalidInput(err) {
		t.Errorf("alpha out of range: expected ErrInvalidInput, got %v", err)
	}
	if _, err := c.Compare([]float64{1}, 100, 5, 8, 0.05); !core.IsInvalidInput(err) {
		t.Errorf("single score: expected ErrInvalidInput, got %v", err)
	}
}
