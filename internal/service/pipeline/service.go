package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/export"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/pipeline"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
	"github.com/northwick-labs/attendance-pipeline-go/internal/repository/postgresql"
)

const runInfo = "manual pipeline (new weeks only)"

type PipelineServiceImpl struct {
	db             *database.DB
	employeeRepo   employee.EmployeeRepository
	ledgerRepo     week.LedgerRepository
	attendanceRepo attendance.AttendanceRepository
	runRepo        run.RunRepository
	aggregateSvc   aggregate.Service
	promotionSvc   promotion.Service
	exportSvc      export.ExportService
	rosterSource   pipeline.RosterSource
	weekSource     pipeline.WeekSource
	loc            *time.Location
	now            func() time.Time
	runTx          func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func NewPipelineService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	ledgerRepo week.LedgerRepository,
	attendanceRepo attendance.AttendanceRepository,
	runRepo run.RunRepository,
	aggregateSvc aggregate.Service,
	promotionSvc promotion.Service,
	exportSvc export.ExportService,
	rosterSource pipeline.RosterSource,
	weekSource pipeline.WeekSource,
	loc *time.Location,
) pipeline.Service {
	return &PipelineServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		ledgerRepo:     ledgerRepo,
		attendanceRepo: attendanceRepo,
		runRepo:        runRepo,
		aggregateSvc:   aggregateSvc,
		promotionSvc:   promotionSvc,
		exportSvc:      exportSvc,
		rosterSource:   rosterSource,
		weekSource:     weekSource,
		loc:            loc,
		now:            time.Now,
		runTx:          postgresql.WithTransaction,
	}
}

// RunOnce implements pipeline.Service.
func (s *PipelineServiceImpl) RunOnce(ctx context.Context) (run.RunRecord, error) {
	rec, err := s.runRepo.Create(ctx, run.RunRecord{
		ID:      uuid.New().String(),
		Type:    run.TypePipeline,
		WeekKey: week.ISOWeekKey(s.now().In(s.loc)),
		Status:  run.StatusStarted,
		Info:    runInfo,
	})
	if err != nil {
		return run.RunRecord{}, err
	}
	rec.WeeksProcessed = []string{}
	rec.WeeksSkipped = []string{}

	slog.Info("Pipeline run started", "run_id", rec.ID, "week_key", rec.WeekKey)

	runErr := s.execute(ctx, &rec)

	rec.Status = run.StatusFinalized
	if runErr != nil {
		rec.Status = run.StatusFinalizedWithError
		msg := runErr.Error()
		rec.Error = &msg
	}

	// Finalization must land even when the run was cancelled, or the lock
	// would stay held forever.
	finalizeCtx := context.WithoutCancel(ctx)
	if err := s.runRepo.Finalize(finalizeCtx, rec); err != nil {
		slog.Error("Failed to finalize run", "run_id", rec.ID, "error", err)
		if runErr == nil {
			runErr = err
		}
		return rec, runErr
	}

	if runErr != nil {
		slog.Error("Pipeline run finalized with error",
			"run_id", rec.ID,
			"weeks_processed", rec.WeeksProcessed,
			"error", runErr)
	} else {
		slog.Info("Pipeline run finalized",
			"run_id", rec.ID,
			"weeks_processed", rec.WeeksProcessed,
			"weeks_skipped", rec.WeeksSkipped,
			"promotions", rec.PromotionsGranted)
	}

	// Reports cover the weeks this run committed, error or not; a later run
	// skips those weeks and would never export them.
	s.export(finalizeCtx, rec)

	return rec, runErr
}

func (s *PipelineServiceImpl) execute(ctx context.Context, rec *run.RunRecord) error {
	if err := s.upsertRoster(ctx, rec); err != nil {
		return err
	}

	pending, err := s.discoverWeeks(ctx, rec)
	if err != nil {
		return err
	}

	affected := make(map[string]bool)
	for _, desc := range pending {
		// Cancellation is honored between weeks only; a week in flight
		// always commits or aborts whole.
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled before week %s: %w", desc.WeekKey, err)
		}

		weekKey := desc.WeekKey
		if err := s.runRepo.UpdateStatus(ctx, rec.ID, run.StatusIngesting, &weekKey); err != nil {
			return err
		}

		if err := s.ingestWeek(ctx, desc, rec.ID, affected); err != nil {
			return fmt.Errorf("week %s: %w", weekKey, err)
		}

		rec.WeeksProcessed = append(rec.WeeksProcessed, weekKey)
		slog.Info("Week ingested", "run_id", rec.ID, "week_key", weekKey)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run cancelled before aggregation: %w", err)
	}

	emails := make([]string, 0, len(affected))
	for email := range affected {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	rec.EmployeesAffected = len(emails)

	if err := s.runRepo.UpdateStatus(ctx, rec.ID, run.StatusAggregating, nil); err != nil {
		return err
	}

	snapshots := make(map[string]aggregate.AggregateSnapshot, len(emails))
	for _, email := range emails {
		snapshot, err := s.aggregateSvc.Recompute(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to recompute aggregates for %s: %w", email, err)
		}
		if err := s.employeeRepo.UpdateAggregateTotals(ctx, email, snapshot.Totals()); err != nil {
			return fmt.Errorf("failed to store aggregates for %s: %w", email, err)
		}
		snapshots[email] = snapshot
	}

	if err := s.runRepo.UpdateStatus(ctx, rec.ID, run.StatusPromoting, nil); err != nil {
		return err
	}

	for _, email := range emails {
		emp, err := s.employeeRepo.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to load %s for promotion: %w", email, err)
		}
		if !emp.Active {
			continue
		}

		promoted, err := s.promotionSvc.Evaluate(ctx, emp, snapshots[email], rec.ID)
		if err != nil {
			return fmt.Errorf("failed to evaluate promotion for %s: %w", email, err)
		}
		if promoted != nil {
			rec.PromotionsGranted++
			slog.Info("Employee promoted",
				"run_id", rec.ID,
				"email", email,
				"from_tier", promoted.FromTier,
				"to_tier", promoted.ToTier)
		}
	}

	return nil
}

// upsertRoster loads the roster and upserts every valid record. Malformed
// records are rejected and counted, never fatal; the rest of the roster and
// the run proceed without them.
func (s *PipelineServiceImpl) upsertRoster(ctx context.Context, rec *run.RunRecord) error {
	records, err := s.rosterSource.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	for i := range records {
		record := &records[i]
		if err := record.Validate(); err != nil {
			rec.RosterRejected++
			slog.Warn("Rejected roster record", "run_id", rec.ID, "email", record.Email, "error", err)
			continue
		}

		exists, err := s.employeeRepo.ExistsByEmail(ctx, record.Email)
		if err != nil {
			return fmt.Errorf("failed to check employee %s: %w", record.Email, err)
		}

		if _, err := s.employeeRepo.Upsert(ctx, record.ToEmployee()); err != nil {
			return fmt.Errorf("failed to upsert employee %s: %w", record.Email, err)
		}

		if exists {
			rec.RosterUpdated++
		} else {
			rec.RosterInserted++
		}
	}

	slog.Info("Roster upserted",
		"run_id", rec.ID,
		"inserted", rec.RosterInserted,
		"updated", rec.RosterUpdated,
		"rejected", rec.RosterRejected)

	return nil
}

// discoverWeeks returns the unprocessed weeks in ingestion order and records
// the already-processed ones as skipped.
func (s *PipelineServiceImpl) discoverWeeks(ctx context.Context, rec *run.RunRecord) ([]week.WeekDescriptor, error) {
	available, err := s.weekSource.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover weeks: %w", err)
	}

	processed, err := s.ledgerRepo.ProcessedSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read week ledger: %w", err)
	}

	skipped := make(map[string]bool)
	for _, desc := range available {
		if processed[desc.WeekKey] && !skipped[desc.WeekKey] {
			skipped[desc.WeekKey] = true
			rec.WeeksSkipped = append(rec.WeeksSkipped, desc.WeekKey)
		}
	}
	sort.Strings(rec.WeeksSkipped)

	pending := week.DiscoverUnprocessed(available, processed)

	slog.Info("Weeks discovered",
		"run_id", rec.ID,
		"available", len(available),
		"pending", len(pending),
		"skipped", len(rec.WeeksSkipped))

	return pending, nil
}

// ingestWeek validates and commits one week. The facts and the ledger marker
// land in a single transaction so a crash can never leave the week half
// written.
func (s *PipelineServiceImpl) ingestWeek(ctx context.Context, desc week.WeekDescriptor, runID string, affected map[string]bool) error {
	payload, err := s.weekSource.Content(ctx, desc.WeekKey)
	if err != nil {
		return err
	}

	facts := make([]attendance.AttendanceFact, 0, len(payload.Entries))
	for i := range payload.Entries {
		entry := &payload.Entries[i]
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, entry.Email, err)
		}

		facts = append(facts, attendance.AttendanceFact{
			WeekKey:     desc.WeekKey,
			WeekStart:   desc.StartDate,
			WeekEnd:     desc.EndDate,
			Email:       entry.Email,
			HoursWorked: entry.HoursWorked,
			OnTimeDays:  entry.OnTimeDays,
			WorkDays:    entry.WorkDays,
			LateCount:   entry.LateCount,
			MajorIssues: entry.MajorIssues,
		})
	}

	err = s.runTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.attendanceRepo.AppendFacts(txCtx, facts); err != nil {
			return err
		}
		if err := s.ledgerRepo.MarkProcessed(txCtx, desc, runID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, f := range facts {
		affected[f.Email] = true
	}

	return nil
}

// export writes the CSV reports for the weeks this run committed. Export is a
// downstream consumer; its failures are logged, never fatal to the run.
func (s *PipelineServiceImpl) export(ctx context.Context, rec run.RunRecord) {
	if len(rec.WeeksProcessed) > 0 {
		if _, err := s.exportSvc.WeekSummaries(ctx, rec.WeeksProcessed); err != nil {
			slog.Error("Failed to export week summaries", "run_id", rec.ID, "error", err)
		}
		if _, err := s.exportSvc.OvertimeReport(ctx); err != nil {
			slog.Error("Failed to export overtime report", "run_id", rec.ID, "error", err)
		}
	}
}
