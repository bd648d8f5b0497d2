package snapshot

import (
	"context"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

// SnapshotService serves the read-only query surface: employees, processed
// weeks, per-week facts, promotion history, and run records.
type SnapshotService interface {
	ActiveEmployees(ctx context.Context) ([]employee.EmployeeResponse, error)
	EmployeeDetail(ctx context.Context, email string) (EmployeeDetailResponse, error)
	ProcessedWeeks(ctx context.Context) ([]week.ProcessedWeekResponse, error)
	WeekFacts(ctx context.Context, weekKey string) ([]attendance.FactResponse, error)
	Promotions(ctx context.Context) ([]promotion.PromotionResponse, error)
	Runs(ctx context.Context, status *run.Status) ([]run.RunResponse, error)
	RunByID(ctx context.Context, id string) (run.RunResponse, error)
}
