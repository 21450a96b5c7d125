package quade

import (
	"math"
	"testing"

	"goquade/domain/core"
)

func TestMatrix_Validate(t *testing.T) {
	valid := Matrix{{1, 2}, {3, 4}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid 2x2 matrix rejected: %v", err)
	}

	cases := map[string]Matrix{
		"nil":          nil,
		"one row":      {{1, 2}},
		"one column":   {{1}, {2}},
		"ragged":       {{1, 2}, {3}},
		"NaN":          {{1, math.NaN()}, {3, 4}},
		"positive inf": {{1, 2}, {math.Inf(1), 4}},
		"negative inf": {{1, 2}, {math.Inf(-1), 4}},
	}
	for name, m := range cases {
		if err := m.Validate(); !core.IsInvalidInput(err) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	c := m.Clone()
	c[0][0] = 99

	if m[0][0] != 1 {
		t.Errorf("clone shares backing storage with original")
	}
}

func TestValidateAlpha(t *testing.T) {
	for _, alpha := range []float64{0.001, 0.05, 0.5, 0.999} {
		if err := ValidateAlpha(alpha); err != nil {
			t.Errorf("alpha=%v rejected: %v", alpha, err)
		}
	}
	for _, alpha := range []float64{0, 1, -0.1, 1.1, math.NaN()} {
		if err := ValidateAlpha(alpha); !core.IsInvalidInput(err) {
			t.Errorf("alpha=%v: expected ErrInvalidInput, got %v", alpha, err)
		}
	}
}

func TestMultipleComparison_SignificantPairs(t *testing.T) {
	mc := &MultipleComparison{
		Significant: [][]bool{
			{false, false, false},
			{true, false, false},
			{false, true, false},
		},
	}

	pairs := mc.SignificantPairs()
	want := [][2]int{{1, 0}, {2, 1}}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(pairs), len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}
