package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/pipeline"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
)

type RunHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Trigger(w http.ResponseWriter, r *http.Request)
}

type runHandlerImpl struct {
	snapshotService snapshot.SnapshotService
	pipelineService pipeline.Service
}

func NewRunHandler(snapshotService snapshot.SnapshotService, pipelineService pipeline.Service) RunHandler {
	return &runHandlerImpl{
		snapshotService: snapshotService,
		pipelineService: pipelineService,
	}
}

// List handles GET /api/v1/runs
func (h *runHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *run.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := run.ParseStatus(raw)
		if !ok {
			response.BadRequest(w, "Unknown run status: "+raw, nil)
			return
		}
		status = &parsed
	}

	runs, err := h.snapshotService.Runs(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// GetByID handles GET /api/v1/runs/{id}
func (h *runHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.snapshotService.RunByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec)
}

// Trigger handles POST /api/v1/runs
//
// The run is executed synchronously. A run that finalized with an error is
// still a created run record, so the record is returned rather than the
// error; only a failure to start one at all, such as the run lock being
// held, is surfaced as an error response.
func (h *runHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	rec, err := h.pipelineService.RunOnce(r.Context())
	if err != nil && rec.ID == "" {
		response.HandleError(w, err)
		return
	}

	message := "Pipeline run finalized"
	if rec.Status == run.StatusFinalizedWithError {
		message = "Pipeline run finalized with error"
	}

	response.Created(w, message, run.ToResponse(rec))
}
