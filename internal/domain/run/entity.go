package run

import (
	"strings"
	"time"
)

type Status string

// Run lifecycle. A run moves strictly forward through these states; the two
// finalized states are terminal.
const (
	StatusStarted            Status = "STARTED"
	StatusIngesting          Status = "INGESTING"
	StatusAggregating        Status = "AGGREGATING"
	StatusPromoting          Status = "PROMOTING"
	StatusFinalized          Status = "FINALIZED"
	StatusFinalizedWithError Status = "FINALIZED_WITH_ERROR"
)

// Terminal reports whether the status is one of the two finalized states.
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusFinalizedWithError
}

// ParseStatus normalizes a status filter value, case-insensitively. It
// reports false for values that name no known state.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(s))
	switch st {
	case StatusStarted, StatusIngesting, StatusAggregating,
		StatusPromoting, StatusFinalized, StatusFinalizedWithError:
		return st, true
	}
	return "", false
}

const TypePipeline = "PIPELINE"

// RunRecord is one pipeline invocation. Creating the record acquires the run
// lock: the store admits at most one non-terminal run at a time.
type RunRecord struct {
	ID      string
	Type    string
	WeekKey string // current ISO week when the run was invoked
	Status  Status
	Info    string

	// CurrentWeek is the week being ingested while the run is in the
	// INGESTING state, empty otherwise.
	CurrentWeek *string

	StartedAt  time.Time
	FinishedAt *time.Time

	WeeksProcessed []string
	WeeksSkipped   []string

	RosterInserted    int
	RosterUpdated     int
	RosterRejected    int
	EmployeesAffected int
	PromotionsGranted int

	Error *string
}
