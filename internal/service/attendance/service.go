package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workpulse/attendance-gateway/internal/config"
	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
	"github.com/workpulse/attendance-gateway/internal/pkg/geo"
)

// SessionServiceImpl mediates the daily clock-in/clock-out state machine.
// It keeps the most recently loaded history per employee as a disposable
// cache: state-machine guards scan that cache and fire before any network
// call, and the cache is replaced wholesale after every successful mutation,
// never patched in place.
type SessionServiceImpl struct {
	store    attendance.Store
	geo      geo.Provider
	office   config.OfficeConfig
	timezone *time.Location

	mu      sync.Mutex
	history map[string][]attendance.Record

	now func() time.Time
}

func NewSessionService(
	store attendance.Store,
	geoProvider geo.Provider,
	office config.OfficeConfig,
	timezone *time.Location,
) attendance.SessionService {
	return &SessionServiceImpl{
		store:    store,
		geo:      geoProvider,
		office:   office,
		timezone: timezone,
		history:  make(map[string][]attendance.Record),
		now:      time.Now,
	}
}

// LoadHistory implements attendance.SessionService.
func (s *SessionServiceImpl) LoadHistory(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	records, err := s.store.ListRecords(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance history: %w", err)
	}

	s.mu.Lock()
	s.history[employeeID] = records
	s.mu.Unlock()

	return records, nil
}

// ClockIn implements attendance.SessionService.
//
// The guard scans the most recently loaded history, so an invalid transition
// fails fast without burning a geolocation read or a network round trip.
func (s *SessionServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.Record, error) {
	records, err := s.cachedHistory(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	if today := findToday(records, s.now(), s.timezone); today != nil && today.ClockIn != nil {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}

	reading, err := s.geo.Locate(ctx)
	if err != nil {
		// Permission denial, timeout and position errors all collapse to
		// one kind; the UI handles them identically. Nothing was created.
		return attendance.Record{}, fmt.Errorf("%w: %v", attendance.ErrLocationUnavailable, err)
	}

	payload := attendance.ClockInPayload{
		Latitude:     reading.Latitude,
		Longitude:    reading.Longitude,
		LocationName: s.labelLocation(reading),
	}

	created, err := s.store.CreateClockIn(ctx, employeeID, payload)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create clock-in: %w", err)
	}

	return s.refreshToday(ctx, employeeID, created)
}

// ClockOut implements attendance.SessionService. No geolocation is captured
// at clock-out.
func (s *SessionServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.Record, error) {
	records, err := s.cachedHistory(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	today := findToday(records, s.now(), s.timezone)
	if today == nil || today.ClockIn == nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}
	if today.ClockOut != nil {
		// Completed is terminal for the day; there is no re-open.
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}

	closed, err := s.store.CreateClockOut(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create clock-out: %w", err)
	}

	return s.refreshToday(ctx, employeeID, closed)
}

// cachedHistory returns the most recently loaded history, fetching it once
// when nothing has been loaded yet for the employee.
func (s *SessionServiceImpl) cachedHistory(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	s.mu.Lock()
	records, ok := s.history[employeeID]
	s.mu.Unlock()

	if ok {
		return records, nil
	}
	return s.LoadHistory(ctx, employeeID)
}

// refreshToday re-reads the authoritative store after a mutation and replaces
// the cached history wholesale. The store owns status assignment and
// rounding, so the gateway never returns a locally patched record.
func (s *SessionServiceImpl) refreshToday(ctx context.Context, employeeID string, fallback attendance.Record) (attendance.Record, error) {
	records, err := s.LoadHistory(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to refresh history after mutation: %w", err)
	}

	if today := findToday(records, s.now(), s.timezone); today != nil {
		return *today, nil
	}

	// The mutation succeeded but the refreshed list is missing today's
	// record. Fall back to the record the store returned from the mutation
	// itself, which is still server-computed.
	slog.Warn("Refreshed history missing today's record after mutation",
		"employee_id", employeeID, "record_id", fallback.ID)
	return fallback, nil
}

func (s *SessionServiceImpl) labelLocation(reading geo.Reading) string {
	distance := geo.HaversineDistance(
		reading.Latitude, reading.Longitude,
		s.office.Latitude, s.office.Longitude,
	)
	if distance <= s.office.RadiusMeters {
		return "Office"
	}
	return "Remote"
}

// findToday returns the record whose date matches now's calendar day in the
// organizational timezone. Duplicate matches violate the store's uniqueness
// invariant; the first encountered wins and the rest are logged, not thrown.
func findToday(records []attendance.Record, now time.Time, loc *time.Location) *attendance.Record {
	var today *attendance.Record
	for i := range records {
		if !records[i].SameDay(now, loc) {
			continue
		}
		if today != nil {
			slog.Warn("Duplicate attendance record for the same day",
				"employee_id", records[i].EmployeeID,
				"kept_record_id", today.ID,
				"duplicate_record_id", records[i].ID)
			continue
		}
		today = &records[i]
	}
	return today
}
