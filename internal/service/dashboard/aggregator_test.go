package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
)

var testTZ = time.FixedZone("WIB", 7*3600)

// testNow is the reference "now" for aggregation tests: 2025-06-15 12:00 WIB.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, testTZ)

func dayRecord(t *testing.T, id string, daysAgo int, clockIn, clockOut string, status string) attendance.Record {
	t.Helper()

	date := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, testTZ).AddDate(0, 0, -daysAgo)
	record := attendance.Record{
		ID:         id,
		EmployeeID: "emp-1",
		Date:       date,
		Status:     status,
	}

	if clockIn != "" {
		in, err := time.ParseInLocation("2006-01-02 15:04:05", date.Format("2006-01-02")+" "+clockIn, testTZ)
		require.NoError(t, err)
		record.ClockIn = &in
	}
	if clockOut != "" {
		out, err := time.ParseInLocation("2006-01-02 15:04:05", date.Format("2006-01-02")+" "+clockOut, testTZ)
		require.NoError(t, err)
		record.ClockOut = &out
	}

	return record
}

func TestBuildSnapshot_EmptyHistory(t *testing.T) {
	t.Parallel()

	snapshot := BuildSnapshot(nil, testNow, testTZ)

	assert.Nil(t, snapshot.TodayRecord)
	assert.Equal(t, 0.0, snapshot.HoursToday)
	assert.Equal(t, 0.0, snapshot.TotalHours)
	assert.Equal(t, 0, snapshot.AttendanceRatePercent)
}

func TestBuildSnapshot_HoursToday_CompletedSession(t *testing.T) {
	t.Parallel()

	// Clock-in 09:00, clock-out 17:30 yields 8.5 hours.
	records := []attendance.Record{
		dayRecord(t, "rec-1", 0, "09:00:00", "17:30:00", attendance.StatusPresent),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	require.NotNil(t, snapshot.TodayRecord)
	assert.Equal(t, "rec-1", snapshot.TodayRecord.ID)
	assert.Equal(t, 8.5, snapshot.HoursToday)
	assert.Equal(t, 8.5, snapshot.TotalHours)
}

func TestBuildSnapshot_HoursToday_OpenSessionIsZero(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		dayRecord(t, "rec-1", 0, "09:00:00", "", attendance.StatusPresent),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	require.NotNil(t, snapshot.TodayRecord)
	assert.Equal(t, 0.0, snapshot.HoursToday)
	assert.Equal(t, 0.0, snapshot.TotalHours, "open sessions contribute zero, not an estimate")
}

func TestBuildSnapshot_TotalHours_SkipsAbandonedSessions(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		dayRecord(t, "rec-1", 3, "09:00:00", "17:00:00", attendance.StatusPresent),
		dayRecord(t, "rec-2", 2, "09:00:00", "", attendance.StatusPresent),
		dayRecord(t, "rec-3", 1, "10:00:00", "18:15:00", attendance.StatusLate),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	assert.Nil(t, snapshot.TodayRecord)
	assert.Equal(t, 16.25, snapshot.TotalHours)
}

func TestBuildSnapshot_AttendanceRate(t *testing.T) {
	t.Parallel()

	// 20 records in the window, 15 Present: round(100*15/20) = 75.
	var records []attendance.Record
	for i := 0; i < 20; i++ {
		status := attendance.StatusPresent
		if i >= 15 {
			status = attendance.StatusAbsent
		}
		records = append(records, dayRecord(t, fmt.Sprintf("rec-%d", i), i+1, "09:00:00", "17:00:00", status))
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	assert.Equal(t, 75, snapshot.AttendanceRatePercent)
}

func TestBuildSnapshot_AttendanceRate_IgnoresRecordsOutsideWindow(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		// In window: today and 29 days ago.
		dayRecord(t, "rec-1", 0, "09:00:00", "17:00:00", attendance.StatusPresent),
		dayRecord(t, "rec-2", 29, "09:00:00", "17:00:00", attendance.StatusAbsent),
		// Out of window: 30 and 90 days ago.
		dayRecord(t, "rec-3", 30, "09:00:00", "17:00:00", attendance.StatusAbsent),
		dayRecord(t, "rec-4", 90, "09:00:00", "17:00:00", attendance.StatusAbsent),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	assert.Equal(t, 50, snapshot.AttendanceRatePercent)
}

func TestBuildSnapshot_AttendanceRate_ClampedTo100(t *testing.T) {
	t.Parallel()

	// Pathological store output: duplicate Present records on the same days.
	var records []attendance.Record
	for i := 0; i < 40; i++ {
		records = append(records, dayRecord(t, fmt.Sprintf("rec-%d", i), (i%10)+1, "09:00:00", "17:00:00", attendance.StatusPresent))
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	assert.Equal(t, 100, snapshot.AttendanceRatePercent)
}

func TestBuildSnapshot_DuplicateTodayRecords_FirstWins(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		dayRecord(t, "rec-first", 0, "09:00:00", "17:00:00", attendance.StatusPresent),
		dayRecord(t, "rec-dup", 0, "08:00:00", "16:00:00", attendance.StatusPresent),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	require.NotNil(t, snapshot.TodayRecord)
	assert.Equal(t, "rec-first", snapshot.TodayRecord.ID)
	assert.Equal(t, 8.0, snapshot.HoursToday)
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		dayRecord(t, "rec-1", 0, "09:00:00", "", attendance.StatusPresent),
		dayRecord(t, "rec-2", 1, "09:00:00", "17:00:00", attendance.StatusLate),
		dayRecord(t, "rec-3", 45, "09:00:00", "17:00:00", attendance.StatusAbsent),
	}

	first := BuildSnapshot(records, testNow, testTZ)
	second := BuildSnapshot(records, testNow, testTZ)

	assert.Equal(t, first, second)
}

func TestBuildSnapshot_DayBoundaryUsesOrgTimezone(t *testing.T) {
	t.Parallel()

	// 23:30 UTC on June 14 is already June 15 in WIB (UTC+7), so a record
	// dated June 15 is "today" for that instant.
	now := time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)
	records := []attendance.Record{
		{
			ID:         "rec-1",
			EmployeeID: "emp-1",
			Date:       time.Date(2025, 6, 15, 0, 0, 0, 0, testTZ),
			Status:     attendance.StatusPresent,
		},
	}

	snapshot := BuildSnapshot(records, now, testTZ)

	require.NotNil(t, snapshot.TodayRecord)
	assert.Equal(t, "rec-1", snapshot.TodayRecord.ID)
}

func TestBuildSnapshot_HoursWorkedNonNegative(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{
		dayRecord(t, "rec-1", 1, "09:00:00", "09:00:00", attendance.StatusPresent),
	}

	snapshot := BuildSnapshot(records, testNow, testTZ)

	assert.GreaterOrEqual(t, snapshot.TotalHours, 0.0)
}
