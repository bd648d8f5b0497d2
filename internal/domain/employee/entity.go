package employee

import (
	"time"
)

type Employee struct {
	Email       string
	EmployeeNum *string
	FirstName   string
	LastName    string
	Department  *string
	Role        string
	Tier        int
	HireDate    *time.Time
	MajorIssues int
	Active      bool

	// Denormalized aggregate totals, recomputed after each pipeline run.
	// The directory owns the row; the aggregation engine only computes.
	HoursTotal  float64
	TotalWeeks  int
	WeeksOnTime int

	UpdatedAt time.Time
}

const (
	TierMin = 1
	TierMax = 3
)

const DefaultRole = "Staff"

var roleByTier = map[int]string{
	1: "Staff",
	2: "Senior",
	3: "Lead",
}

// RoleForTier returns the ladder role for a tier, or fallback when the tier
// has no ladder entry.
func RoleForTier(tier int, fallback string) string {
	if role, ok := roleByTier[tier]; ok {
		return role
	}
	return fallback
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AggregateTotals is the denormalized rollup stored on the employee row.
type AggregateTotals struct {
	HoursTotal  float64
	TotalWeeks  int
	WeeksOnTime int
}
