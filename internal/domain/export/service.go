package export

import "context"

// ExportService writes CSV reports under the configured output directory.
type ExportService interface {
	// WeekSummaries writes one summary-<weekKey>.csv per given week and
	// returns the paths written, in week order.
	WeekSummaries(ctx context.Context, weekKeys []string) ([]string, error)

	// OvertimeReport rewrites performance_overtime.csv across every stored
	// fact and returns the path written.
	OvertimeReport(ctx context.Context) (string, error)
}
