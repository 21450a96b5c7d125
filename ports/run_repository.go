package ports

import (
	"context"

	"goquade/domain/core"
	"goquade/domain/quade"
)

// RunRepository archives completed test runs. The core computation never
// depends on it; services treat a nil repository as "archiving disabled".
type RunRepository interface {
	// SaveRun persists a completed run
	SaveRun(ctx context.Context, run *quade.TestRun) error

	// GetRun retrieves a run by ID
	GetRun(ctx context.Context, id core.RunID) (*quade.TestRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]*quade.TestRun, error)
}
