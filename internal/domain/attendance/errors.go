package attendance

import "errors"

// Attendance store errors
var (
	// ErrDuplicateFact guards against re-ingesting a partially written week:
	// the (week key, email) pair already holds a fact.
	ErrDuplicateFact = errors.New("attendance fact already exists for this week and employee")

	// ErrUnknownEmployee means a fact references an identity the directory
	// has never seen. The roster must be upserted before attendance.
	ErrUnknownEmployee = errors.New("attendance fact references an unknown employee")

	ErrFactNotFound = errors.New("attendance fact not found")
)
