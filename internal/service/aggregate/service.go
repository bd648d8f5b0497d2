package aggregate

import (
	"context"
	"fmt"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
)

type AggregateServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewAggregateService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
) aggregate.Service {
	return &AggregateServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Recompute implements aggregate.Service. The fold relies on the store
// returning facts in chronological order; a week without work days still
// contributes its hours to the cumulative series but is excluded from the
// week counts and the major-issue sum.
func (s *AggregateServiceImpl) Recompute(ctx context.Context, email string) (aggregate.AggregateSnapshot, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return aggregate.AggregateSnapshot{}, err
	}

	snapshot := aggregate.AggregateSnapshot{Email: emp.Email}
	if emp.HireDate == nil {
		return snapshot, nil
	}

	facts, err := s.attendanceRepo.FactsForEmployeeSince(ctx, emp.Email, *emp.HireDate)
	if err != nil {
		return aggregate.AggregateSnapshot{}, fmt.Errorf("failed to load facts for %s: %w", emp.Email, err)
	}

	cumulative := 0.0
	for _, f := range facts {
		cumulative += f.HoursWorked
		snapshot.TotalHours += f.HoursWorked
		if f.Counted() {
			snapshot.TotalWeeksCounted++
			snapshot.MajorIssuesSum += f.MajorIssues
			if f.OnTime() {
				snapshot.OnTimeWeeks++
			}
		}
		snapshot.Series = append(snapshot.Series, aggregate.CumulativePoint{
			WeekKey:         f.WeekKey,
			WeekStart:       f.WeekStart,
			Hours:           f.HoursWorked,
			CumulativeHours: cumulative,
		})
	}

	return snapshot, nil
}
