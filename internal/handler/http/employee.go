package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByEmail(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	snapshotService snapshot.SnapshotService
}

func NewEmployeeHandler(snapshotService snapshot.SnapshotService) EmployeeHandler {
	return &employeeHandlerImpl{snapshotService: snapshotService}
}

// List handles GET /api/v1/employees
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.snapshotService.ActiveEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// GetByEmail handles GET /api/v1/employees/{email}
func (h *employeeHandlerImpl) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	detail, err := h.snapshotService.EmployeeDetail(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}
