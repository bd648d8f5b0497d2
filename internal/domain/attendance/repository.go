package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the durable append-only store of weekly facts.
type AttendanceRepository interface {
	// AppendFacts writes every fact of one week. It fails with
	// ErrDuplicateFact when any (week key, email) pair already exists and
	// with ErrUnknownEmployee when a fact references an email the directory
	// does not hold. Appending nothing is valid; an empty week is still a
	// week.
	AppendFacts(ctx context.Context, facts []AttendanceFact) error

	// FactsForEmployeeSince returns the employee's facts whose week start
	// date is at or after since, ordered by week start date then week key.
	FactsForEmployeeSince(ctx context.Context, email string, since time.Time) ([]AttendanceFact, error)

	// ListByWeek returns every fact of one week ordered by email.
	ListByWeek(ctx context.Context, weekKey string) ([]AttendanceFact, error)

	// ListAll returns every stored fact ordered by week key then email.
	ListAll(ctx context.Context) ([]AttendanceFact, error)
}
