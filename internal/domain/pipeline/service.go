package pipeline

import (
	"context"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
)

// Service is the single entry point of the pipeline. RunOnce is safe to call
// repeatedly: weeks already in the ledger are skipped, and a second caller
// while a run is live fails with run.ErrRunAlreadyInProgress.
type Service interface {
	// RunOnce executes one full pipeline invocation: roster upsert, ingest
	// of every unprocessed week oldest-first, aggregate recomputation for
	// the employees touched, promotion evaluation, and export. It returns
	// the finalized run record; on failure the record is finalized with the
	// error and the partial progress it preserved.
	RunOnce(ctx context.Context) (run.RunRecord, error)
}
