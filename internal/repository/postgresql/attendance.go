package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

const factColumns = `week_key, week_start, week_end, email, hours_worked,
		on_time_days, work_days, late_count, major_issues, created_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// AppendFacts implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) AppendFacts(ctx context.Context, facts []attendance.AttendanceFact) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO weekly_attendance (
			week_key, week_start, week_end, email, hours_worked,
			on_time_days, work_days, late_count, major_issues
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, f := range facts {
		_, err := q.Exec(ctx, query,
			f.WeekKey, f.WeekStart, f.WeekEnd, f.Email, f.HoursWorked,
			f.OnTimeDays, f.WorkDays, f.LateCount, f.MajorIssues,
		)
		if err != nil {
			return fmt.Errorf("failed to append fact %s/%s: %w", f.WeekKey, f.Email, translateFactPgError(err))
		}
	}

	return nil
}

// FactsForEmployeeSince implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) FactsForEmployeeSince(ctx context.Context, email string, since time.Time) ([]attendance.AttendanceFact, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + factColumns + `
		FROM weekly_attendance
		WHERE email = $1 AND week_start >= $2
		ORDER BY week_start, week_key
	`

	rows, err := q.Query(ctx, query, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts for %s: %w", email, err)
	}
	defer rows.Close()

	return scanFacts(rows)
}

// ListByWeek implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByWeek(ctx context.Context, weekKey string) ([]attendance.AttendanceFact, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + factColumns + `
		FROM weekly_attendance
		WHERE week_key = $1
		ORDER BY email
	`

	rows, err := q.Query(ctx, query, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts for week %s: %w", weekKey, err)
	}
	defer rows.Close()

	return scanFacts(rows)
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListAll(ctx context.Context) ([]attendance.AttendanceFact, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + factColumns + `
		FROM weekly_attendance
		ORDER BY week_key, email
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	defer rows.Close()

	return scanFacts(rows)
}

func scanFacts(rows pgx.Rows) ([]attendance.AttendanceFact, error) {
	var facts []attendance.AttendanceFact
	for rows.Next() {
		var f attendance.AttendanceFact
		err := rows.Scan(
			&f.WeekKey, &f.WeekStart, &f.WeekEnd, &f.Email, &f.HoursWorked,
			&f.OnTimeDays, &f.WorkDays, &f.LateCount, &f.MajorIssues, &f.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return facts, nil
}

func translateFactPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return attendance.ErrDuplicateFact
		case foreignKeyViolationCode:
			return attendance.ErrUnknownEmployee
		}
	}
	return err
}
