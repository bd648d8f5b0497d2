package run

import "context"

type RunRepository interface {
	// Create inserts the record in its initial state and thereby acquires
	// the exclusive run lock. It fails with ErrRunAlreadyInProgress when a
	// non-terminal run exists.
	Create(ctx context.Context, rec RunRecord) (RunRecord, error)

	// UpdateStatus advances the run's state. currentWeek is set while a week
	// is being ingested and nil otherwise.
	UpdateStatus(ctx context.Context, id string, status Status, currentWeek *string) error

	// Finalize writes the terminal status, counters, processed weeks and
	// error message in one statement, releasing the lock.
	Finalize(ctx context.Context, rec RunRecord) error

	GetByID(ctx context.Context, id string) (RunRecord, error)
	List(ctx context.Context, status *Status) ([]RunRecord, error)

	// HasRunForWeek reports whether any run was already recorded for the
	// given trigger week. The scheduler uses it to fire at most once per
	// week, attempted runs included.
	HasRunForWeek(ctx context.Context, weekKey string) (bool, error)
}
