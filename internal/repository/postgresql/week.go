package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

type ledgerRepositoryImpl struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) week.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

// IsProcessed implements week.LedgerRepository.
func (l *ledgerRepositoryImpl) IsProcessed(ctx context.Context, weekKey string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT EXISTS (SELECT 1 FROM processed_weeks WHERE week_key = $1)`

	var processed bool
	if err := q.QueryRow(ctx, query, weekKey).Scan(&processed); err != nil {
		return false, fmt.Errorf("failed to check processed week %s: %w", weekKey, err)
	}

	return processed, nil
}

// ProcessedSet implements week.LedgerRepository.
func (l *ledgerRepositoryImpl) ProcessedSet(ctx context.Context) (map[string]bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT week_key FROM processed_weeks`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed week keys: %w", err)
	}
	defer rows.Close()

	processed := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		processed[key] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return processed, nil
}

// MarkProcessed implements week.LedgerRepository.
func (l *ledgerRepositoryImpl) MarkProcessed(ctx context.Context, desc week.WeekDescriptor, runID string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO processed_weeks (week_key, week_start, week_end, expected_hours, run_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query, desc.WeekKey, desc.StartDate, desc.EndDate, desc.ExpectedHours, runID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return week.ErrDuplicateWeek
		}
		return fmt.Errorf("failed to mark week %s processed: %w", desc.WeekKey, err)
	}

	return nil
}

// GetProcessed implements week.LedgerRepository.
func (l *ledgerRepositoryImpl) GetProcessed(ctx context.Context, weekKey string) (week.ProcessedWeek, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT week_key, week_start, week_end, expected_hours, processed_at, run_id
		FROM processed_weeks
		WHERE week_key = $1
	`

	var pw week.ProcessedWeek
	err := q.QueryRow(ctx, query, weekKey).Scan(
		&pw.WeekKey, &pw.StartDate, &pw.EndDate, &pw.ExpectedHours, &pw.ProcessedAt, &pw.RunID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return week.ProcessedWeek{}, week.ErrWeekNotFound
		}
		return week.ProcessedWeek{}, fmt.Errorf("failed to get processed week %s: %w", weekKey, err)
	}

	return pw, nil
}

// ListProcessed implements week.LedgerRepository.
func (l *ledgerRepositoryImpl) ListProcessed(ctx context.Context) ([]week.ProcessedWeek, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT week_key, week_start, week_end, expected_hours, processed_at, run_id
		FROM processed_weeks
		ORDER BY week_start, week_key
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed weeks: %w", err)
	}
	defer rows.Close()

	var weeks []week.ProcessedWeek
	for rows.Next() {
		var pw week.ProcessedWeek
		err := rows.Scan(&pw.WeekKey, &pw.StartDate, &pw.EndDate, &pw.ExpectedHours, &pw.ProcessedAt, &pw.RunID)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, pw)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return weeks, nil
}
