package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/config"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/filesource"
	"github.com/northwick-labs/attendance-pipeline-go/internal/repository/postgresql"
	aggregateService "github.com/northwick-labs/attendance-pipeline-go/internal/service/aggregate"
	exportService "github.com/northwick-labs/attendance-pipeline-go/internal/service/export"
	pipelineService "github.com/northwick-labs/attendance-pipeline-go/internal/service/pipeline"
	promotionService "github.com/northwick-labs/attendance-pipeline-go/internal/service/promotion"
)

// One-shot pipeline invocation, for cron jobs and operators that do not
// want the API process running.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Pipeline.Timezone)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading pipeline timezone:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	promotionRepo := postgresql.NewPromotionRepository(db)
	runRepo := postgresql.NewRunRepository(db)

	aggregateSvc := aggregateService.NewAggregateService(employeeRepo, attendanceRepo)
	promotionSvc := promotionService.NewPromotionService(promotionRepo)
	exportSvc := exportService.NewExportService(attendanceRepo, ledgerRepo, cfg.Pipeline.OutputDir)
	pipelineSvc := pipelineService.NewPipelineService(
		db,
		employeeRepo,
		ledgerRepo,
		attendanceRepo,
		runRepo,
		aggregateSvc,
		promotionSvc,
		exportSvc,
		filesource.NewLocalRosterSource(cfg.Pipeline.RosterPath),
		filesource.NewLocalWeekSource(cfg.Pipeline.WeeksDir, loc),
		loc,
	)

	rec, runErr := pipelineSvc.RunOnce(context.Background())

	if rec.ID != "" {
		fmt.Printf("Run %s finished with status %s\n", rec.ID, rec.Status)
		fmt.Printf("  weeks processed: %d, skipped: %d\n", len(rec.WeeksProcessed), len(rec.WeeksSkipped))
		fmt.Printf("  roster inserted: %d, updated: %d, rejected: %d\n", rec.RosterInserted, rec.RosterUpdated, rec.RosterRejected)
		fmt.Printf("  employees affected: %d, promotions granted: %d\n", rec.EmployeesAffected, rec.PromotionsGranted)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Pipeline run failed:", runErr)
		os.Exit(1)
	}
}
