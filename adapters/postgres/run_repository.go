package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"goquade/domain/core"
	"goquade/domain/quade"
	"goquade/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// runRow is the database shape of a TestRun; result and comparison are
// stored as JSONB documents
type runRow struct {
	ID         string         `db:"id"`
	Dataset    sql.NullString `db:"dataset"`
	Result     []byte         `db:"result"`
	Comparison []byte         `db:"comparison"`
	CreatedAt  time.Time      `db:"created_at"`
}

// SaveRun persists a completed run
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *quade.TestRun) error {
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return err
	}

	var comparisonJSON []byte
	if run.Comparison != nil {
		comparisonJSON, err = json.Marshal(run.Comparison)
		if err != nil {
			return err
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quade_runs (id, dataset, result, comparison, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID.String(), nullString(run.Dataset), resultJSON, comparisonJSON, run.CreatedAt.Time())

	return err
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*quade.TestRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, dataset, result, comparison, created_at
		FROM quade_runs
		WHERE id = $1
	`, id.String())

	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("run", id.String())
	}
	if err != nil {
		return nil, err
	}

	return rowToRun(row)
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*quade.TestRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, dataset, result, comparison, created_at
		FROM quade_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*quade.TestRun, 0, len(rows))
	for _, row := range rows {
		run, err := rowToRun(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func rowToRun(row runRow) (*quade.TestRun, error) {
	run := &quade.TestRun{
		ID:        core.RunID(row.ID),
		Dataset:   row.Dataset.String,
		CreatedAt: core.NewTimestamp(row.CreatedAt),
	}

	if err := json.Unmarshal(row.Result, &run.Result); err != nil {
		return nil, err
	}
	if len(row.Comparison) > 0 {
		run.Comparison = &quade.MultipleComparison{}
		if err := json.Unmarshal(row.Comparison, run.Comparison); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
