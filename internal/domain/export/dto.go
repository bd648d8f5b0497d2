package export

// Row status buckets for the weekly summary and overtime reports.
const (
	StatusPass = "PASS"
	StatusWarn = "WARN"
	StatusFail = "FAIL"
)

// SummaryRow is one line of a summary CSV: a single employee's recorded
// week against the expected hours for that week.
type SummaryRow struct {
	WeekKey       string
	Email         string
	HoursWorked   float64
	OnTimePercent int
	Status        string
}

// StatusFor buckets recorded hours against the week's expectation. Zero
// hours fail outright, anything short of expected warns.
func StatusFor(hours, expected float64) string {
	switch {
	case hours == 0:
		return StatusFail
	case hours < expected:
		return StatusWarn
	default:
		return StatusPass
	}
}

// ExportResponse lists the files written by an on-demand export.
type ExportResponse struct {
	Summaries []string `json:"summaries"`
	Overtime  string   `json:"overtime"`
}
