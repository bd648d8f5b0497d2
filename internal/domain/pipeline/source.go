package pipeline

import (
	"context"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

// RosterSource supplies the roster records to upsert at the start of a run.
type RosterSource interface {
	// Load returns every roster record in the source, raw and unvalidated.
	// A missing source yields an empty slice, not an error.
	Load(ctx context.Context) ([]employee.RosterRecord, error)
}

// WeekSource supplies the weeks available for ingestion.
type WeekSource interface {
	// Available returns the descriptor of every week the source holds. A
	// file that cannot be decoded or placed on the calendar fails discovery
	// with a validation error naming it.
	Available(ctx context.Context) ([]week.WeekDescriptor, error)

	// Content returns the full decoded payload for one available week.
	Content(ctx context.Context, weekKey string) (week.WeekPayload, error)
}
