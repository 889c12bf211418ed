package attendanceapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
	"github.com/workpulse/attendance-gateway/internal/pkg/validator"
)

// The portal backend grew out of several services that never agreed on field
// names, so the same concept arrives under different keys depending on the
// endpoint. wireRecord accepts every shape seen in the wild; normalizeRecord
// maps them into the one Record type before anything else touches the data.
type wireRecord struct {
	ID       string `json:"id"`
	RecordID string `json:"record_id"`

	EmployeeID      string `json:"employee_id"`
	EmployeeIDAlias string `json:"employeeId"`

	Date           string `json:"date"`
	AttendanceDate string `json:"attendance_date"`

	ClockIn     *string `json:"clock_in"`
	ClockInTime *string `json:"clockIn"`
	CheckInTime *string `json:"check_in_time"`

	ClockOut     *string `json:"clock_out"`
	ClockOutTime *string `json:"clockOut"`
	CheckOutTime *string `json:"check_out_time"`

	Latitude        *float64 `json:"latitude"`
	ClockInLatitude *float64 `json:"clock_in_latitude"`

	Longitude        *float64 `json:"longitude"`
	ClockInLongitude *float64 `json:"clock_in_longitude"`

	LocationName      *string `json:"location_name"`
	LocationNameAlias *string `json:"locationName"`

	Status string `json:"status"`

	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type wireRecordList struct {
	Records []wireRecord `json:"records"`
	Data    []wireRecord `json:"data"`
}

func (l wireRecordList) items() []wireRecord {
	if len(l.Records) > 0 {
		return l.Records
	}
	return l.Data
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// parseTimestamp accepts RFC3339 timestamps or the store's legacy
// "2006-01-02 15:04:05" format, which carries no offset and is interpreted
// in the organizational timezone.
func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if t, ok := validator.IsValidDateTime(value); ok {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
	}
	return t, nil
}

func normalizeStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case attendance.StatusPresent, "ON_TIME":
		return attendance.StatusPresent
	case attendance.StatusAbsent:
		return attendance.StatusAbsent
	case attendance.StatusLate:
		return attendance.StatusLate
	case "", attendance.StatusUnmarked:
		return attendance.StatusUnmarked
	default:
		return strings.ToUpper(strings.TrimSpace(status))
	}
}

// normalizeRecord maps one accepted wire shape into the Record entity.
// Calendar days are anchored to the organizational timezone.
func normalizeRecord(w wireRecord, loc *time.Location) (attendance.Record, error) {
	dateStr := firstNonEmpty(w.Date, w.AttendanceDate)
	if dateStr == "" {
		return attendance.Record{}, fmt.Errorf("record %q has no date field", firstNonEmpty(w.ID, w.RecordID))
	}

	// Some endpoints send the day as a bare date, others as a timestamp.
	var date time.Time
	if d, ok := validator.IsValidDate(dateStr); ok {
		date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	} else {
		t, err := parseTimestamp(dateStr, loc)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("record date: %w", err)
		}
		local := t.In(loc)
		date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	}

	record := attendance.Record{
		ID:           firstNonEmpty(w.ID, w.RecordID),
		EmployeeID:   firstNonEmpty(w.EmployeeID, w.EmployeeIDAlias),
		Date:         date,
		Latitude:     firstFloat(w.Latitude, w.ClockInLatitude),
		Longitude:    firstFloat(w.Longitude, w.ClockInLongitude),
		LocationName: firstString(w.LocationName, w.LocationNameAlias),
		Status:       normalizeStatus(w.Status),
	}

	if raw := firstString(w.ClockIn, w.ClockInTime, w.CheckInTime); raw != nil {
		t, err := parseTimestamp(*raw, loc)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("clock-in: %w", err)
		}
		record.ClockIn = &t
	}

	if raw := firstString(w.ClockOut, w.ClockOutTime, w.CheckOutTime); raw != nil {
		t, err := parseTimestamp(*raw, loc)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("clock-out: %w", err)
		}
		record.ClockOut = &t
	}

	if w.CreatedAt != nil {
		if t, err := parseTimestamp(*w.CreatedAt, loc); err == nil {
			record.CreatedAt = t
		}
	}
	if w.UpdatedAt != nil {
		if t, err := parseTimestamp(*w.UpdatedAt, loc); err == nil {
			record.UpdatedAt = t
		}
	}

	return record, nil
}
