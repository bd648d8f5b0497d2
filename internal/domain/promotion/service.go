package promotion

import (
	"context"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
)

// Service applies the promotion rule to one employee's current aggregates.
type Service interface {
	// Evaluate returns the appended record when the employee is eligible and
	// not yet promoted, or nil when the rule does not fire or the employee
	// already holds a promoted record. Re-evaluating a promoted employee is
	// a no-op.
	Evaluate(ctx context.Context, emp employee.Employee, snapshot aggregate.AggregateSnapshot, runID string) (*PromotionRecord, error)
}
