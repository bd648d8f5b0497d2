package postgresql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

var employeeTestColumns = []string{
	"email", "employee_num", "first_name", "last_name", "department", "role", "tier",
	"hire_date", "major_issues", "active", "hours_total", "total_weeks", "weeks_on_time", "updated_at",
}

// newMockQuerier routes repository calls into a pgxmock pool through the
// transaction slot of the context, the same way WithTransaction injects a tx.
func newMockQuerier(t *testing.T) (pgxmock.PgxPoolIface, context.Context) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, context.WithValue(context.Background(), "tx", mock)
}

func TestEmployeeRepository_Upsert(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	num := "E-1001"
	dept := "Operations"
	hired := time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := pgxmock.NewRows(employeeTestColumns).
		AddRow("ana@example.com", &num, "Ana", "Ibarra", &dept, "Staff", 1, &hired, 0, true, 0.0, 0, 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs("ana@example.com", &num, "Ana", "Ibarra", &dept, "Staff", 1, &hired, 0, true).
		WillReturnRows(rows)

	saved, err := repo.Upsert(ctx, employee.Employee{
		Email:       "ana@example.com",
		EmployeeNum: &num,
		FirstName:   "Ana",
		LastName:    "Ibarra",
		Department:  &dept,
		Role:        "Staff",
		Tier:        1,
		HireDate:    &hired,
		MajorIssues: 0,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if saved.Email != "ana@example.com" || saved.FirstName != "Ana" {
		t.Fatalf("unexpected employee %+v", saved)
	}
	if saved.HireDate == nil || !saved.HireDate.Equal(hired) {
		t.Fatalf("unexpected hire date %v", saved.HireDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Upsert_DuplicateEmployeeNum(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_employee_num_key"})

	_, err := repo.Upsert(ctx, employee.Employee{Email: "ana@example.com", FirstName: "Ana", LastName: "Ibarra"})
	if !errors.Is(err, employee.ErrEmployeeNumExists) {
		t.Fatalf("expected ErrEmployeeNumExists, got %v", err)
	}
}

func TestEmployeeRepository_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees")).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_ListActive(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	now := time.Now()
	rows := pgxmock.NewRows(employeeTestColumns).
		AddRow("ana@example.com", nil, "Ana", "Ibarra", nil, "Staff", 1, nil, 0, true, 120.5, 3, 3, now).
		AddRow("ben@example.com", nil, "Ben", "Okoro", nil, "Senior", 2, nil, 1, true, 80.0, 2, 1, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE active = TRUE")).
		WillReturnRows(rows)

	employees, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}

	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].HoursTotal != 120.5 || employees[1].Tier != 2 {
		t.Fatalf("unexpected employees %+v", employees)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_UpdateAggregateTotals(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	mock.ExpectQuery(regexp.QuoteMeta("SET hours_total = $1")).
		WithArgs(132.25, 4, 3, "ana@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow("ana@example.com"))

	err := repo.UpdateAggregateTotals(ctx, "ana@example.com", employee.AggregateTotals{
		HoursTotal:  132.25,
		TotalWeeks:  4,
		WeeksOnTime: 3,
	})
	if err != nil {
		t.Fatalf("UpdateAggregateTotals returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_UpdateAggregateTotals_NotFound(t *testing.T) {
	t.Parallel()

	mock, ctx := newMockQuerier(t)
	repo := NewEmployeeRepository(&database.DB{})

	mock.ExpectQuery(regexp.QuoteMeta("SET hours_total = $1")).
		WillReturnError(pgx.ErrNoRows)

	err := repo.UpdateAggregateTotals(ctx, "ghost@example.com", employee.AggregateTotals{})
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_employee_num_key"}
	if !errors.Is(translateEmployeePgError(dup), employee.ErrEmployeeNumExists) {
		t.Fatalf("expected employee number mapping")
	}

	other := errors.New("random")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
