package postgresql

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

var factTestColumns = []string{
	"week_key", "week_start", "week_end", "email", "hours_worked",
	"on_time_days", "work_days", "late_count", "major_issues", "created_at",
}

func TestAttendanceRepository_AppendFacts(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	start := time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_attendance")).
		WithArgs("2024-W05", start, end, "ana@example.com", 40.0, 5, 5, 0, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_attendance")).
		WithArgs("2024-W05", start, end, "ben@example.com", 32.5, 4, 5, 1, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.AppendFacts(ctx, []attendance.AttendanceFact{
		{WeekKey: "2024-W05", WeekStart: start, WeekEnd: end, Email: "ana@example.com", HoursWorked: 40, OnTimeDays: 5, WorkDays: 5},
		{WeekKey: "2024-W05", WeekStart: start, WeekEnd: end, Email: "ben@example.com", HoursWorked: 32.5, OnTimeDays: 4, WorkDays: 5, LateCount: 1},
	})
	if err != nil {
		t.Fatalf("AppendFacts returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceRepository_AppendFacts_Empty(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	if err := repo.AppendFacts(ctx, nil); err != nil {
		t.Fatalf("AppendFacts with no facts returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceRepository_AppendFacts_Duplicate(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_attendance")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "weekly_attendance_week_key_email_key"})

	err := repo.AppendFacts(ctx, []attendance.AttendanceFact{
		{WeekKey: "2024-W05", Email: "ana@example.com"},
	})
	if !errors.Is(err, attendance.ErrDuplicateFact) {
		t.Fatalf("expected ErrDuplicateFact, got %v", err)
	}
}

func TestAttendanceRepository_AppendFacts_UnknownEmployee(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_attendance")).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "weekly_attendance_email_fkey"})

	err := repo.AppendFacts(ctx, []attendance.AttendanceFact{
		{WeekKey: "2024-W05", Email: "ghost@example.com"},
	})
	if !errors.Is(err, attendance.ErrUnknownEmployee) {
		t.Fatalf("expected ErrUnknownEmployee, got %v", err)
	}
}

func TestAttendanceRepository_FactsForEmployeeSince(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	hired := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := pgxmock.NewRows(factTestColumns).
		AddRow("2024-W05", start, start.AddDate(0, 0, 6), "ana@example.com", 40.0, 5, 5, 0, 0, now).
		AddRow("2024-W06", start.AddDate(0, 0, 7), start.AddDate(0, 0, 13), "ana@example.com", 36.0, 4, 5, 1, 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND week_start >= $2")).
		WithArgs("ana@example.com", hired).
		WillReturnRows(rows)

	facts, err := repo.FactsForEmployeeSince(ctx, "ana@example.com", hired)
	if err != nil {
		t.Fatalf("FactsForEmployeeSince returned error: %v", err)
	}

	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	if facts[0].WeekKey != "2024-W05" || facts[1].HoursWorked != 36.0 {
		t.Fatalf("unexpected facts %+v", facts)
	}
}

func TestAttendanceRepository_ListByWeek(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewAttendanceRepository(&database.DB{})

	start := time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := pgxmock.NewRows(factTestColumns).
		AddRow("2024-W05", start, start.AddDate(0, 0, 6), "ana@example.com", 40.0, 5, 5, 0, 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE week_key = $1")).
		WithArgs("2024-W05").
		WillReturnRows(rows)

	facts, err := repo.ListByWeek(ctx, "2024-W05")
	if err != nil {
		t.Fatalf("ListByWeek returned error: %v", err)
	}

	if len(facts) != 1 || facts[0].Email != "ana@example.com" {
		t.Fatalf("unexpected facts %+v", facts)
	}
}

func TestTranslateFactPgError(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: uniqueViolationCode}
	if !errors.Is(translateFactPgError(dup), attendance.ErrDuplicateFact) {
		t.Fatalf("expected duplicate fact mapping")
	}

	fk := &pgconn.PgError{Code: foreignKeyViolationCode}
	if !errors.Is(translateFactPgError(fk), attendance.ErrUnknownEmployee) {
		t.Fatalf("expected unknown employee mapping")
	}

	other := errors.New("random")
	if translateFactPgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
