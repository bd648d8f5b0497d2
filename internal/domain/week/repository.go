package week

import "context"

type LedgerRepository interface {
	IsProcessed(ctx context.Context, weekKey string) (bool, error)
	// ProcessedSet returns every processed week key for O(1) membership
	// checks during discovery.
	ProcessedSet(ctx context.Context) (map[string]bool, error)
	// MarkProcessed stores the descriptor together with its marker. It fails
	// with ErrDuplicateWeek when the week was already marked; the coordinator
	// must never mark the same week twice.
	MarkProcessed(ctx context.Context, desc WeekDescriptor, runID string) error
	GetProcessed(ctx context.Context, weekKey string) (ProcessedWeek, error)
	ListProcessed(ctx context.Context) ([]ProcessedWeek, error)
}
