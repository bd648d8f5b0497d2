package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

const employeeColumns = `email, employee_num, first_name, last_name, department, role, tier,
		hire_date, major_issues, active, hours_total, total_weeks, weeks_on_time, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Upsert implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			email, employee_num, first_name, last_name, department, role, tier,
			hire_date, major_issues, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO UPDATE SET
			employee_num = EXCLUDED.employee_num,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			department = EXCLUDED.department,
			role = EXCLUDED.role,
			tier = EXCLUDED.tier,
			hire_date = COALESCE(EXCLUDED.hire_date, employees.hire_date),
			major_issues = EXCLUDED.major_issues,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING ` + employeeColumns + `
	`

	var saved employee.Employee
	err := q.QueryRow(ctx, query,
		emp.Email, emp.EmployeeNum, emp.FirstName, emp.LastName, emp.Department,
		emp.Role, emp.Tier, emp.HireDate, emp.MajorIssues, emp.Active,
	).Scan(
		&saved.Email, &saved.EmployeeNum, &saved.FirstName, &saved.LastName,
		&saved.Department, &saved.Role, &saved.Tier, &saved.HireDate,
		&saved.MajorIssues, &saved.Active, &saved.HoursTotal, &saved.TotalWeeks,
		&saved.WeeksOnTime, &saved.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee %s: %w", emp.Email, translateEmployeePgError(err))
	}

	return saved, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE email = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, email).Scan(
		&emp.Email, &emp.EmployeeNum, &emp.FirstName, &emp.LastName,
		&emp.Department, &emp.Role, &emp.Tier, &emp.HireDate,
		&emp.MajorIssues, &emp.Active, &emp.HoursTotal, &emp.TotalWeeks,
		&emp.WeeksOnTime, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", email, err)
	}

	return emp, nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee %s: %w", email, err)
	}

	return exists, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE active = TRUE
		ORDER BY email
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.Email, &emp.EmployeeNum, &emp.FirstName, &emp.LastName,
			&emp.Department, &emp.Role, &emp.Tier, &emp.HireDate,
			&emp.MajorIssues, &emp.Active, &emp.HoursTotal, &emp.TotalWeeks,
			&emp.WeeksOnTime, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateAggregateTotals implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateAggregateTotals(ctx context.Context, email string, totals employee.AggregateTotals) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET hours_total = $1, total_weeks = $2, weeks_on_time = $3, updated_at = NOW()
		WHERE email = $4
		RETURNING email
	`

	var updated string
	err := q.QueryRow(ctx, query, totals.HoursTotal, totals.TotalWeeks, totals.WeeksOnTime, email).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update aggregate totals for %s: %w", email, err)
	}

	return nil
}

func translateEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if pgErr.ConstraintName == "employees_employee_num_key" {
			return employee.ErrEmployeeNumExists
		}
	}
	return err
}
