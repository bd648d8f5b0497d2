package employee

import "context"

type EmployeeRepository interface {
	// Upsert inserts the employee or overwrites the mutable fields of the
	// existing row. A nil hire date on the incoming employee preserves the
	// stored hire date.
	Upsert(ctx context.Context, emp Employee) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]Employee, error)
	UpdateAggregateTotals(ctx context.Context, email string, totals AggregateTotals) error
}
