package dashboard

import (
	"context"
)

// DashboardService produces the attendance snapshot for an employee.
type DashboardService interface {
	// GetSnapshot fetches the employee's history and reduces it to the
	// dashboard metrics as of now.
	GetSnapshot(ctx context.Context, employeeID string) (SnapshotResponse, error)
}
