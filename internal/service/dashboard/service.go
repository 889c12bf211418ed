package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
	"github.com/workpulse/attendance-gateway/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	store    attendance.Store
	timezone *time.Location

	now func() time.Time
}

func NewDashboardService(store attendance.Store, timezone *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		store:    store,
		timezone: timezone,
		now:      time.Now,
	}
}

// GetSnapshot implements dashboard.DashboardService. The history is fetched
// fresh on every call; the aggregation itself is pure.
func (s *DashboardServiceImpl) GetSnapshot(ctx context.Context, employeeID string) (dashboard.SnapshotResponse, error) {
	records, err := s.store.ListRecords(ctx, employeeID)
	if err != nil {
		return dashboard.SnapshotResponse{}, fmt.Errorf("failed to load history for snapshot: %w", err)
	}

	return BuildSnapshot(records, s.now(), s.timezone), nil
}
