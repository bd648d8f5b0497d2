package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

const runColumns = `id, run_type, week_key, status, info, current_week, started_at, finished_at,
		weeks_processed, weeks_skipped, roster_inserted, roster_updated, roster_rejected,
		employees_affected, promotions_granted, error`

type runRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) run.RunRepository {
	return &runRepositoryImpl{db: db}
}

// Create implements run.RunRepository.
func (r *runRepositoryImpl) Create(ctx context.Context, rec run.RunRecord) (run.RunRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO runs (id, run_type, week_key, status, info)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + runColumns + `
	`

	saved, err := scanRun(q.QueryRow(ctx, query, rec.ID, rec.Type, rec.WeekKey, rec.Status, rec.Info))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if pgErr.ConstraintName == "runs_single_active_idx" {
				return run.RunRecord{}, run.ErrRunAlreadyInProgress
			}
		}
		return run.RunRecord{}, fmt.Errorf("failed to create run: %w", err)
	}

	return saved, nil
}

// UpdateStatus implements run.RunRepository.
func (r *runRepositoryImpl) UpdateStatus(ctx context.Context, id string, status run.Status, currentWeek *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE runs
		SET status = $1, current_week = $2
		WHERE id = $3
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, status, currentWeek, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return run.ErrRunNotFound
		}
		return fmt.Errorf("failed to update run %s status: %w", id, err)
	}

	return nil
}

// Finalize implements run.RunRepository.
func (r *runRepositoryImpl) Finalize(ctx context.Context, rec run.RunRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE runs
		SET status = $1, finished_at = NOW(), current_week = NULL,
			weeks_processed = $2, weeks_skipped = $3,
			roster_inserted = $4, roster_updated = $5, roster_rejected = $6,
			employees_affected = $7, promotions_granted = $8, error = $9
		WHERE id = $10
		RETURNING id
	`

	// Nil slices would write NULL into NOT NULL array columns.
	if rec.WeeksProcessed == nil {
		rec.WeeksProcessed = []string{}
	}
	if rec.WeeksSkipped == nil {
		rec.WeeksSkipped = []string{}
	}

	var updated string
	err := q.QueryRow(ctx, query,
		rec.Status, rec.WeeksProcessed, rec.WeeksSkipped,
		rec.RosterInserted, rec.RosterUpdated, rec.RosterRejected,
		rec.EmployeesAffected, rec.PromotionsGranted, rec.Error, rec.ID,
	).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return run.ErrRunNotFound
		}
		return fmt.Errorf("failed to finalize run %s: %w", rec.ID, err)
	}

	return nil
}

// GetByID implements run.RunRepository.
func (r *runRepositoryImpl) GetByID(ctx context.Context, id string) (run.RunRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM runs
		WHERE id = $1
	`

	rec, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return run.RunRecord{}, run.ErrRunNotFound
		}
		return run.RunRecord{}, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	return rec, nil
}

// List implements run.RunRepository.
func (r *runRepositoryImpl) List(ctx context.Context, status *run.Status) ([]run.RunRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY started_at DESC
	`
	args := []interface{}{}
	if status != nil {
		query = `
		SELECT ` + runColumns + `
		FROM runs
		WHERE status = $1
		ORDER BY started_at DESC
	`
		args = append(args, *status)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []run.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// HasRunForWeek implements run.RunRepository.
func (r *runRepositoryImpl) HasRunForWeek(ctx context.Context, weekKey string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM runs WHERE run_type = $1 AND week_key = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, run.TypePipeline, weekKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check runs for week %s: %w", weekKey, err)
	}

	return exists, nil
}

func scanRun(row pgx.Row) (run.RunRecord, error) {
	var rec run.RunRecord
	var status string
	err := row.Scan(
		&rec.ID, &rec.Type, &rec.WeekKey, &status, &rec.Info, &rec.CurrentWeek,
		&rec.StartedAt, &rec.FinishedAt, &rec.WeeksProcessed, &rec.WeeksSkipped,
		&rec.RosterInserted, &rec.RosterUpdated, &rec.RosterRejected,
		&rec.EmployeesAffected, &rec.PromotionsGranted, &rec.Error,
	)
	if err != nil {
		return run.RunRecord{}, err
	}
	rec.Status = run.Status(status)
	return rec, nil
}
