package attendance

import (
	"context"
)

// SessionService defines business logic for the daily clock-in/clock-out
// state machine: NotStarted -> Active -> Completed, per employee per day.
// No state permits re-entry.
type SessionService interface {
	// LoadHistory retrieves the employee's full record history from the store.
	// Read-only, no side effects.
	LoadHistory(ctx context.Context, employeeID string) ([]Record, error)

	// ClockIn opens today's session. Allowed only while today's state is
	// NotStarted; the guard fires locally before any network call. Acquires
	// one geolocation reading, then submits the create-session request.
	// Fails atomically: no partial record is created on any failure.
	ClockIn(ctx context.Context, employeeID string) (Record, error)

	// ClockOut closes today's session. Allowed only while today's state is
	// Active. No geolocation is captured at clock-out.
	ClockOut(ctx context.Context, employeeID string) (Record, error)
}
