package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/config"
	appHTTP "github.com/northwick-labs/attendance-pipeline-go/internal/handler/http"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/cron"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/filesource"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/token"
	"github.com/northwick-labs/attendance-pipeline-go/internal/repository/postgresql"
	aggregateService "github.com/northwick-labs/attendance-pipeline-go/internal/service/aggregate"
	exportService "github.com/northwick-labs/attendance-pipeline-go/internal/service/export"
	pipelineService "github.com/northwick-labs/attendance-pipeline-go/internal/service/pipeline"
	promotionService "github.com/northwick-labs/attendance-pipeline-go/internal/service/promotion"
	snapshotService "github.com/northwick-labs/attendance-pipeline-go/internal/service/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Pipeline.Timezone)
	if err != nil {
		fmt.Println("Error loading pipeline timezone:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	promotionRepo := postgresql.NewPromotionRepository(db)
	runRepo := postgresql.NewRunRepository(db)

	tokenService := token.NewTokenService(cfg.Token.Secret)
	rosterSource := filesource.NewLocalRosterSource(cfg.Pipeline.RosterPath)
	weekSource := filesource.NewLocalWeekSource(cfg.Pipeline.WeeksDir, loc)

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
		rosterSource,
		weekSource,
		loc,
	)
	snapshotSvc := snapshotService.NewSnapshotService(
		employeeRepo,
		ledgerRepo,
		attendanceRepo,
		promotionRepo,
		runRepo,
		aggregateSvc,
	)

	employeeHandler := appHTTP.NewEmployeeHandler(snapshotSvc)
	weekHandler := appHTTP.NewWeekHandler(snapshotSvc)
	promotionHandler := appHTTP.NewPromotionHandler(snapshotSvc)
	runHandler := appHTTP.NewRunHandler(snapshotSvc, pipelineSvc)
	exportHandler := appHTTP.NewExportHandler(snapshotSvc, exportSvc)

	router := appHTTP.NewRouter(
		tokenService,
		employeeHandler,
		weekHandler,
		promotionHandler,
		runHandler,
		exportHandler,
	)

	var scheduler *cron.Scheduler
	if cfg.Schedule.Enabled {
		scheduler = cron.NewScheduler()
		pipelineJobs := cron.NewPipelineJobs(pipelineSvc, runRepo, loc, cfg.Schedule.CheckInterval)
		pipelineJobs.RegisterJobs(scheduler)
		scheduler.Start()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost:%d\n", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
