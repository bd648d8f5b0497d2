package run

import "time"

type RunResponse struct {
	ID                string   `json:"id"`
	Type              string   `json:"type"`
	WeekKey           string   `json:"week_key"`
	Status            string   `json:"status"`
	Info              string   `json:"info,omitempty"`
	CurrentWeek       *string  `json:"current_week,omitempty"`
	StartedAt         string   `json:"started_at"`
	FinishedAt        *string  `json:"finished_at,omitempty"`
	WeeksProcessed    []string `json:"weeks_processed"`
	WeeksSkipped      []string `json:"weeks_skipped,omitempty"`
	RosterInserted    int      `json:"roster_inserted"`
	RosterUpdated     int      `json:"roster_updated"`
	RosterRejected    int      `json:"roster_rejected"`
	EmployeesAffected int      `json:"employees_affected"`
	PromotionsGranted int      `json:"promotions_granted"`
	Error             *string  `json:"error,omitempty"`
}

func ToResponse(rec RunRecord) RunResponse {
	resp := RunResponse{
		ID:                rec.ID,
		Type:              rec.Type,
		WeekKey:           rec.WeekKey,
		Status:            string(rec.Status),
		Info:              rec.Info,
		CurrentWeek:       rec.CurrentWeek,
		StartedAt:         rec.StartedAt.Format(time.RFC3339),
		WeeksProcessed:    rec.WeeksProcessed,
		WeeksSkipped:      rec.WeeksSkipped,
		RosterInserted:    rec.RosterInserted,
		RosterUpdated:     rec.RosterUpdated,
		RosterRejected:    rec.RosterRejected,
		EmployeesAffected: rec.EmployeesAffected,
		PromotionsGranted: rec.PromotionsGranted,
		Error:             rec.Error,
	}
	if rec.FinishedAt != nil {
		finished := rec.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &finished
	}
	if resp.WeeksProcessed == nil {
		resp.WeeksProcessed = []string{}
	}
	return resp
}
