package attendance

import (
	"context"
)

// ClockInPayload carries the geolocation captured at clock-in time. The
// clock-in timestamp itself is assigned server-side by the store.
type ClockInPayload struct {
	Latitude     float64
	Longitude    float64
	LocationName string
}

// Store is the remote attendance store, the single source of truth for
// records. The gateway never caches writes across sessions; everything read
// through this interface is a disposable snapshot valid for one rendering
// cycle.
type Store interface {
	// ListRecords retrieves all attendance records for the employee.
	// Ordering is not part of the contract; callers re-derive it from Date.
	ListRecords(ctx context.Context, employeeID string) ([]Record, error)

	// CreateClockIn opens today's session. The store is responsible for
	// idempotent creation of the (employee, day) record.
	CreateClockIn(ctx context.Context, employeeID string, payload ClockInPayload) (Record, error)

	// CreateClockOut closes today's open session.
	CreateClockOut(ctx context.Context, employeeID string) (Record, error)
}
