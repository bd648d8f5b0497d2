package snapshot

import (
	"context"
	"fmt"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

type SnapshotServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	ledgerRepo     week.LedgerRepository
	attendanceRepo attendance.AttendanceRepository
	promotionRepo  promotion.PromotionRepository
	runRepo        run.RunRepository
	aggregateSvc   aggregate.Service
}

func NewSnapshotService(
	employeeRepo employee.EmployeeRepository,
	ledgerRepo week.LedgerRepository,
	attendanceRepo attendance.AttendanceRepository,
	promotionRepo promotion.PromotionRepository,
	runRepo run.RunRepository,
	aggregateSvc aggregate.Service,
) snapshot.SnapshotService {
	return &SnapshotServiceImpl{
		employeeRepo:   employeeRepo,
		ledgerRepo:     ledgerRepo,
		attendanceRepo: attendanceRepo,
		promotionRepo:  promotionRepo,
		runRepo:        runRepo,
		aggregateSvc:   aggregateSvc,
	}
}

// ActiveEmployees implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) ActiveEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// EmployeeDetail implements snapshot.SnapshotService. The snapshot is
// recomputed from the fact store on every call, so the detail view never
// serves stale aggregates.
func (s *SnapshotServiceImpl) EmployeeDetail(ctx context.Context, email string) (snapshot.EmployeeDetailResponse, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return snapshot.EmployeeDetailResponse{}, err
	}

	snap, err := s.aggregateSvc.Recompute(ctx, email)
	if err != nil {
		return snapshot.EmployeeDetailResponse{}, fmt.Errorf("failed to recompute aggregates for %s: %w", email, err)
	}

	return snapshot.EmployeeDetailResponse{
		Employee: employee.ToResponse(emp),
		Snapshot: aggregate.ToResponse(snap),
	}, nil
}

// ProcessedWeeks implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) ProcessedWeeks(ctx context.Context) ([]week.ProcessedWeekResponse, error) {
	weeks, err := s.ledgerRepo.ListProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed weeks: %w", err)
	}

	responses := make([]week.ProcessedWeekResponse, 0, len(weeks))
	for _, p := range weeks {
		responses = append(responses, week.ToResponse(p))
	}
	return responses, nil
}

// WeekFacts implements snapshot.SnapshotService. An unknown week key is an
// error; an ingested week that happened to be empty returns an empty slice.
func (s *SnapshotServiceImpl) WeekFacts(ctx context.Context, weekKey string) ([]attendance.FactResponse, error) {
	if _, err := s.ledgerRepo.GetProcessed(ctx, weekKey); err != nil {
		return nil, err
	}

	facts, err := s.attendanceRepo.ListByWeek(ctx, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts for week %s: %w", weekKey, err)
	}

	responses := make([]attendance.FactResponse, 0, len(facts))
	for _, f := range facts {
		responses = append(responses, attendance.ToResponse(f))
	}
	return responses, nil
}

// Promotions implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) Promotions(ctx context.Context) ([]promotion.PromotionResponse, error) {
	records, err := s.promotionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	responses := make([]promotion.PromotionResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, promotion.ToResponse(rec))
	}
	return responses, nil
}

// Runs implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) Runs(ctx context.Context, status *run.Status) ([]run.RunResponse, error) {
	records, err := s.runRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	responses := make([]run.RunResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, run.ToResponse(rec))
	}
	return responses, nil
}

// RunByID implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) RunByID(ctx context.Context, id string) (run.RunResponse, error) {
	rec, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return run.RunResponse{}, err
	}
	return run.ToResponse(rec), nil
}
