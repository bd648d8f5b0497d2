package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/pipeline"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

type PipelineJobs struct {
	pipelineSvc pipeline.Service
	runRepo     run.RunRepository
	loc         *time.Location
	interval    time.Duration
	now         func() time.Time
}

func NewPipelineJobs(
	pipelineSvc pipeline.Service,
	runRepo run.RunRepository,
	loc *time.Location,
	interval time.Duration,
) *PipelineJobs {
	return &PipelineJobs{
		pipelineSvc: pipelineSvc,
		runRepo:     runRepo,
		loc:         loc,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *PipelineJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("weekly_pipeline", j.interval, j.TriggerWeeklyPipeline)
}

// TriggerWeeklyPipeline fires the pipeline once per ISO week, inside the
// Friday-evening window or the Saturday catch-up. The at-most-once guarantee
// does not rest on this gate: the week ledger and the run lock still hold if
// the policy fires twice.
func (j *PipelineJobs) TriggerWeeklyPipeline(ctx context.Context) error {
	now := j.now().In(j.loc)
	if !InTriggerWindow(now) {
		return nil
	}

	weekKey := week.ISOWeekKey(now)
	done, err := j.runRepo.HasRunForWeek(ctx, weekKey)
	if err != nil {
		return fmt.Errorf("failed to check runs for week %s: %w", weekKey, err)
	}
	if done {
		slog.Debug("Cron: Pipeline already ran this week", "week_key", weekKey)
		return nil
	}

	slog.Info("Cron: Triggering weekly pipeline", "week_key", weekKey)

	rec, err := j.pipelineSvc.RunOnce(ctx)
	if err != nil {
		// A run started by another caller between the check and here is not
		// a job failure.
		if errors.Is(err, run.ErrRunAlreadyInProgress) {
			slog.Info("Cron: Pipeline run already in progress", "week_key", weekKey)
			return nil
		}
		return err
	}

	slog.Info("Cron: Weekly pipeline finished",
		"run_id", rec.ID,
		"status", rec.Status,
		"weeks_processed", len(rec.WeeksProcessed),
		"promotions", rec.PromotionsGranted)

	return nil
}

// InTriggerWindow reports whether t falls in the weekly trigger window:
// Friday at or after 20:00 local time, or any time Saturday (catch-up for a
// missed Friday).
func InTriggerWindow(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday:
		return t.Hour() >= 20
	case time.Saturday:
		return true
	default:
		return false
	}
}
