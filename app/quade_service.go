package app

import (
	"context"

	"goquade/adapters/stats/engine"
	"goquade/domain/core"
	"goquade/domain/quade"
	"goquade/internal"
	"goquade/ports"
)

// QuadeService assembles engine and comparator outputs into result artifacts.
// Per invocation: compute the statistic, decide rejection via p < alpha, then
// run the post-hoc comparator only when requested and the null was rejected.
type QuadeService struct {
	engine     *engine.QuadeEngine
	comparator *engine.Comparator
	runs       ports.RunRepository // nil disables archiving
	logger     *internal.Logger
}

// NewQuadeService creates a new test service. runs may be nil.
func NewQuadeService(runs ports.RunRepository, logger *internal.Logger) *QuadeService {
	return &QuadeService{
		engine:     engine.NewQuadeEngine(),
		comparator: engine.NewComparator(),
		runs:       runs,
		logger:     logger.WithPrefix("QuadeService"),
	}
}

// RunRequest describes one test invocation
type RunRequest struct {
	Matrix  quade.Matrix
	Alpha   float64
	PostHoc bool
	Dataset string
}

// RunTest executes the Quade test on X. It returns the stats result and,
// when postHoc is set and the null hypothesis was rejected, the pairwise
// comparison; otherwise the comparison is nil. Either a complete result is
// returned or none at all.
func (s *QuadeService) RunTest(x quade.Matrix, alpha float64, postHoc bool) (quade.StatsResult, *quade.MultipleComparison, error) {
	if err := quade.ValidateAlpha(alpha); err != nil {
		return quade.StatsResult{}, nil, err
	}

	comp, err := s.engine.Compute(x)
	if err != nil {
		return quade.StatsResult{}, nil, err
	}

	r := x.Rows()
	c := x.Cols()
	result := quade.StatsResult{
		NObs:       r * c,
		Blocks:     r,
		Treatments: c,
		Statistic:  comp.Statistic,
		DFNumer:    comp.DFNumer,
		DFDenom:    comp.DFDenom,
		PValue:     comp.PValue,
		Alpha:      alpha,
		RejectNull: comp.PValue < alpha,
	}

	if !postHoc || !result.RejectNull {
		return result, nil, nil
	}

	pairwise, err := s.comparator.Compare(comp.Scores, comp.Denominator, r, comp.DFDenom, alpha)
	if err != nil {
		return quade.StatsResult{}, nil, err
	}
	return result, pairwise, nil
}

// Run executes the test and wraps the outcome in an archived TestRun
// artifact. Archiving failures are logged, not fatal: the computation
// already succeeded and is returned regardless.
func (s *QuadeService) Run(ctx context.Context, req RunRequest) (*quade.TestRun, error) {
	result, pairwise, err := s.RunTest(req.Matrix, req.Alpha, req.PostHoc)
	if err != nil {
		return nil, err
	}

	run := &quade.TestRun{
		ID:         core.RunID(core.NewID()),
		Dataset:    req.Dataset,
		Result:     result,
		Comparison: pairwise,
		CreatedAt:  core.Now(),
	}

	s.logger.Info("test run %s: W=%.4f p=%.6f reject=%v", run.ID, result.Statistic, result.PValue, result.RejectNull)

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			s.logger.Warn("failed to archive run %s: %v", run.ID, err)
		}
	}

	return run, nil
}
