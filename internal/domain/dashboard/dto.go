package dashboard

import (
	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
)

// SnapshotResponse is the derived-metric snapshot consumed by the employee
// dashboard. Every field is always populated; absence of data yields
// zero-valued metrics, never a missing field.
type SnapshotResponse struct {
	TodayRecord           *attendance.RecordResponse `json:"today_record"`
	HoursToday            float64                    `json:"hours_today"`
	TotalHours            float64                    `json:"total_hours"`
	AttendanceRatePercent int                        `json:"attendance_rate_percent"`
}
