package http

import (
	"net/http"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/export"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
)

type ExportHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	snapshotService snapshot.SnapshotService
	exportService   export.ExportService
}

func NewExportHandler(snapshotService snapshot.SnapshotService, exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{
		snapshotService: snapshotService,
		exportService:   exportService,
	}
}

// Trigger handles POST /api/v1/exports
//
// Rewrites the summary CSV of every processed week plus the overtime report
// from the stored facts, without running the pipeline.
func (h *exportHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.snapshotService.ProcessedWeeks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	weekKeys := make([]string, 0, len(weeks))
	for _, wk := range weeks {
		weekKeys = append(weekKeys, wk.WeekKey)
	}

	summaries, err := h.exportService.WeekSummaries(r.Context(), weekKeys)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overtime, err := h.exportService.OvertimeReport(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, export.ExportResponse{
		Summaries: summaries,
		Overtime:  overtime,
	})
}
