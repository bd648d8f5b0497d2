package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
)

type WeekHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetFacts(w http.ResponseWriter, r *http.Request)
}

type weekHandlerImpl struct {
	snapshotService snapshot.SnapshotService
}

func NewWeekHandler(snapshotService snapshot.SnapshotService) WeekHandler {
	return &weekHandlerImpl{snapshotService: snapshotService}
}

// List handles GET /api/v1/weeks
func (h *weekHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.snapshotService.ProcessedWeeks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, weeks)
}

// GetFacts handles GET /api/v1/weeks/{weekKey}/facts
func (h *weekHandlerImpl) GetFacts(w http.ResponseWriter, r *http.Request) {
	weekKey := chi.URLParam(r, "weekKey")

	facts, err := h.snapshotService.WeekFacts(r.Context(), weekKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, facts)
}
