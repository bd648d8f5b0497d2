package snapshot

import (
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
)

// EmployeeDetailResponse pairs an employee with their freshly recomputed
// since-hire snapshot, including the cumulative-hours series.
type EmployeeDetailResponse struct {
	Employee employee.EmployeeResponse  `json:"employee"`
	Snapshot aggregate.SnapshotResponse `json:"snapshot"`
}
