package response

import (
	"errors"
	"net/http"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/run"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNumExists):
		Conflict(w, "Employee number already belongs to another employee")

	// Week ledger errors
	case errors.Is(err, week.ErrWeekNotFound):
		NotFound(w, "Week not found")
	case errors.Is(err, week.ErrDuplicateWeek):
		Conflict(w, "Week already processed")

	// Attendance store errors
	case errors.Is(err, attendance.ErrDuplicateFact):
		Conflict(w, "Attendance fact already recorded for this week and employee")
	case errors.Is(err, attendance.ErrUnknownEmployee):
		Conflict(w, "Attendance fact references an unknown employee")

	// Promotion errors
	case errors.Is(err, promotion.ErrAlreadyPromoted):
		Conflict(w, "Employee already promoted")

	// Run errors
	case errors.Is(err, run.ErrRunNotFound):
		NotFound(w, "Run not found")
	case errors.Is(err, run.ErrRunAlreadyInProgress):
		Conflict(w, "A pipeline run is already in progress")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
