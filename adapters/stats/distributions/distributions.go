package distributions

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the reference distributions the
// test pipeline needs, so CDF/quantile calls are not scattered across packages
type Distributions struct{}

// New creates a new distributions utility
func New() *Distributions {
	return &Distributions{}
}

// FCDF computes the cumulative distribution function of the F distribution
// with df1 numerator and df2 denominator degrees of freedom
func (d *Distributions) FCDF(x float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return fDist.CDF(x)
}

// FUpperTail computes the upper-tail probability 1 - F_CDF(x; df1, df2),
// the p-value of an F-approximated test statistic
func (d *Distributions) FUpperTail(x float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - fDist.CDF(x)
}

// TQuantile computes the quantile (inverse CDF) of the Student-t
// distribution with the given degrees of freedom
func (d *Distributions) TQuantile(p float64, df int) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return tDist.Quantile(p)
}
