package dashboard

import (
	"log/slog"
	"math"
	"time"

	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
	"github.com/workpulse/attendance-gateway/internal/domain/dashboard"
)

// rateWindowDays is the trailing span, inclusive of today, over which the
// attendance rate is computed.
const rateWindowDays = 30

// BuildSnapshot reduces a record list to the dashboard metrics as of now.
// It is deterministic and side-effect free: the same records and the same
// now always produce the same snapshot, which is what makes it testable
// without a live store.
func BuildSnapshot(records []attendance.Record, now time.Time, loc *time.Location) dashboard.SnapshotResponse {
	snapshot := dashboard.SnapshotResponse{}

	today := todayRecord(records, now, loc)
	if today != nil {
		resp := attendance.NewRecordResponse(*today)
		snapshot.TodayRecord = &resp
		if today.IsCompleted() {
			snapshot.HoursToday = attendance.RoundHours(today.HoursWorked())
		}
	}

	// Open or abandoned sessions contribute zero, never an estimate.
	var total float64
	for _, r := range records {
		if r.IsCompleted() {
			total += r.HoursWorked()
		}
	}
	snapshot.TotalHours = attendance.RoundHours(total)

	snapshot.AttendanceRatePercent = attendanceRate(records, now, loc)

	return snapshot
}

// todayRecord picks the single record matching now's calendar day. Duplicates
// violate the store's uniqueness invariant: first encountered wins, the rest
// are a data-integrity issue to be logged, not thrown.
func todayRecord(records []attendance.Record, now time.Time, loc *time.Location) *attendance.Record {
	var today *attendance.Record
	for i := range records {
		if !records[i].SameDay(now, loc) {
			continue
		}
		if today != nil {
			slog.Warn("Duplicate record for today in aggregation input",
				"employee_id", records[i].EmployeeID,
				"kept_record_id", today.ID,
				"duplicate_record_id", records[i].ID)
			continue
		}
		today = &records[i]
	}
	return today
}

// attendanceRate computes round(100 * present / window) over the trailing
// 30-day window, clamped to [0, 100]. An empty window is a defined zero case.
func attendanceRate(records []attendance.Record, now time.Time, loc *time.Location) int {
	local := now.In(loc)
	dayEnd := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	windowStart := dayEnd.AddDate(0, 0, -rateWindowDays)

	var windowSize, present int
	for _, r := range records {
		date := r.Date.In(loc)
		if date.Before(windowStart) || !date.Before(dayEnd) {
			continue
		}
		windowSize++
		if r.Status == attendance.StatusPresent {
			present++
		}
	}

	if windowSize == 0 {
		return 0
	}

	rate := int(math.Round(100 * float64(present) / float64(windowSize)))
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	return rate
}
