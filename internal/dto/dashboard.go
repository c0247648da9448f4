package dto

import "time"

// DashboardSummary captures the headline counts shown on the dashboard.
type DashboardSummary struct {
	Seniors         int       `json:"total_seniors"`
	ActiveSeniors   int       `json:"active_seniors"`
	PWDs            int       `json:"total_pwds"`
	ActivePWDs      int       `json:"active_pwds"`
	Benefits        int       `json:"total_benefits"`
	PendingBenefits int       `json:"pending_benefits"`
	Visits          int       `json:"total_visits"`
	ScheduledVisits int       `json:"scheduled_visits"`
	Drives          int       `json:"total_drives"`
	OngoingDrives   int       `json:"ongoing_drives"`
	GeneratedAt     time.Time `json:"generated_at"`
}
