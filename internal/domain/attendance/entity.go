package attendance

import (
	"time"
)

// Attendance statuses assigned by the remote store. The gateway treats them
// as display metadata and never computes them itself.
const (
	StatusPresent  = "PRESENT"
	StatusAbsent   = "ABSENT"
	StatusLate     = "LATE"
	StatusUnmarked = "UNMARKED"
)

type Record struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	ClockIn      *time.Time
	ClockOut     *time.Time
	Latitude     *float64
	Longitude    *float64
	LocationName *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HoursWorked derives worked hours from the timestamp pair. Zero while the
// session is still open; the pair is the only authoritative input.
func (r Record) HoursWorked() float64 {
	if r.ClockIn == nil || r.ClockOut == nil {
		return 0
	}
	return r.ClockOut.Sub(*r.ClockIn).Hours()
}

// IsCompleted reports whether the day's session is closed.
func (r Record) IsCompleted() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

// IsActive reports whether a session is open (clocked in, not yet out).
func (r Record) IsActive() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// SameDay compares the record's date with t on calendar-day boundaries
// evaluated in loc. All day math goes through the one organizational
// timezone, never the caller's local clock.
func (r Record) SameDay(t time.Time, loc *time.Location) bool {
	ry, rm, rd := r.Date.In(loc).Date()
	ty, tm, td := t.In(loc).Date()
	return ry == ty && rm == tm && rd == td
}
