package http

import (
	"net/http"

	"github.com/workpulse/attendance-gateway/internal/domain/dashboard"
	"github.com/workpulse/attendance-gateway/internal/handler/http/response"
	"github.com/workpulse/attendance-gateway/internal/pkg/jwt"
)

type DashboardHandler interface {
	GetSnapshot(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetSnapshot implements DashboardHandler.
func (h *dashboardHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.dashboardService.GetSnapshot(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}
