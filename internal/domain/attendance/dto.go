package attendance

import (
	"math"

	"github.com/workpulse/attendance-gateway/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

func (p ClockInPayload) Validate() error {
	var errs validator.ValidationErrors

	if p.Latitude < -90 || p.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if p.Longitude < -180 || p.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	Date         string   `json:"date"`
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	LocationName *string  `json:"location_name,omitempty"`
	HoursWorked  float64  `json:"hours_worked"`
	Status       string   `json:"status"`
}

type HistoryResponse struct {
	TotalCount int              `json:"total_count"`
	Records    []RecordResponse `json:"records"`
}

// RoundHours rounds derived hours to two decimal places for presentation.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// NewRecordResponse converts a Record entity to its response shape.
func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date.Format("2006-01-02"),
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		LocationName: r.LocationName,
		HoursWorked:  RoundHours(r.HoursWorked()),
		Status:       r.Status,
	}

	if r.ClockIn != nil {
		v := r.ClockIn.Format("2006-01-02 15:04:05")
		resp.ClockInTime = &v
	}
	if r.ClockOut != nil {
		v := r.ClockOut.Format("2006-01-02 15:04:05")
		resp.ClockOutTime = &v
	}

	return resp
}

// NewHistoryResponse maps a record list to the history response shape.
func NewHistoryResponse(records []Record) HistoryResponse {
	responses := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, NewRecordResponse(r))
	}
	return HistoryResponse{
		TotalCount: len(records),
		Records:    responses,
	}
}
