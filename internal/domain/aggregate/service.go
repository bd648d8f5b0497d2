package aggregate

import "context"

// Service recomputes since-hire aggregates from the attendance store.
type Service interface {
	// Recompute folds the employee's facts since their hire date, oldest
	// first, into a fresh snapshot. An employee without a hire date on file
	// aggregates over nothing.
	Recompute(ctx context.Context, email string) (AggregateSnapshot, error)
}
