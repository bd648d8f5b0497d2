package employee

import (
	"strings"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/validator"
)

// RosterRecord is one decoded entry of the roster file. Field names follow
// the upstream feed, which is camelCase.
type RosterRecord struct {
	Email       string `json:"email"`
	EmployeeNum string `json:"employeeNum"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	Tier        *int   `json:"tier"`
	HireDate    string `json:"hireDate"`
	MajorIssues *int   `json:"majorIssues"`
	Active      *bool  `json:"active"`
}

// Validate normalizes the record in place (lowercased email, trimmed fields,
// defaults applied) and reports every malformed field.
func (r *RosterRecord) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.EmployeeNum = strings.TrimSpace(r.EmployeeNum)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Department = strings.TrimSpace(r.Department)
	r.Role = strings.TrimSpace(r.Role)
	r.HireDate = strings.TrimSpace(r.HireDate)

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "firstName",
			Message: "firstName is required",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "lastName",
			Message: "lastName is required",
		})
	}

	if r.Role == "" {
		r.Role = DefaultRole
	}

	if r.Tier == nil {
		tier := TierMin
		r.Tier = &tier
	} else if *r.Tier < TierMin || *r.Tier > TierMax {
		errs = append(errs, validator.ValidationError{
			Field:   "tier",
			Message: "tier must be between 1 and 3",
		})
	}

	if r.MajorIssues == nil {
		issues := 0
		r.MajorIssues = &issues
	} else if *r.MajorIssues < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "majorIssues",
			Message: "majorIssues must not be negative",
		})
	}

	if r.Active == nil {
		active := true
		r.Active = &active
	}

	if r.HireDate != "" {
		if _, ok := validator.IsValidDate(r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hireDate",
				Message: "hireDate must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEmployee maps a validated record to the directory entity. An empty hire
// date maps to nil so the upsert preserves any previously stored date.
func (r *RosterRecord) ToEmployee() Employee {
	emp := Employee{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Role:        r.Role,
		Tier:        *r.Tier,
		MajorIssues: *r.MajorIssues,
		Active:      *r.Active,
	}

	if r.EmployeeNum != "" {
		num := r.EmployeeNum
		emp.EmployeeNum = &num
	}
	if r.Department != "" {
		dept := r.Department
		emp.Department = &dept
	}
	if r.HireDate != "" {
		if hired, ok := validator.IsValidDate(r.HireDate); ok {
			emp.HireDate = &hired
		}
	}

	return emp
}

type EmployeeResponse struct {
	Email       string  `json:"email"`
	EmployeeNum *string `json:"employee_num,omitempty"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Department  *string `json:"department,omitempty"`
	Role        string  `json:"role"`
	Tier        int     `json:"tier"`
	HireDate    *string `json:"hire_date,omitempty"`
	MajorIssues int     `json:"major_issues"`
	Active      bool    `json:"active"`
	HoursTotal  float64 `json:"hours_total"`
	TotalWeeks  int     `json:"total_weeks"`
	WeeksOnTime int     `json:"weeks_on_time"`
	UpdatedAt   string  `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		Email:       e.Email,
		EmployeeNum: e.EmployeeNum,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Department:  e.Department,
		Role:        e.Role,
		Tier:        e.Tier,
		MajorIssues: e.MajorIssues,
		Active:      e.Active,
		HoursTotal:  e.HoursTotal,
		TotalWeeks:  e.TotalWeeks,
		WeeksOnTime: e.WeeksOnTime,
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
	if e.HireDate != nil {
		hired := e.HireDate.Format("2006-01-02")
		resp.HireDate = &hired
	}
	return resp
}
