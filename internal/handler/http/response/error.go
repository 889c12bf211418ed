package response

import (
	"errors"
	"net/http"

	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
	"github.com/workpulse/attendance-gateway/internal/pkg/jwt"
	"github.com/workpulse/attendance-gateway/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Nothing crosses this
// boundary as an unstructured failure; the UI decides how each kind is
// surfaced.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Local state-machine guards
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No active session to clock out of")

	// Collaborator failures; the caller may retry, the gateway never does
	case errors.Is(err, attendance.ErrLocationUnavailable):
		ServiceUnavailable(w, "Device location could not be acquired")
	case errors.Is(err, attendance.ErrRemoteUnavailable):
		ServiceUnavailable(w, "Attendance store is unavailable")

	// Credential problems belong to the auth layer
	case errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, jwt.ErrNoCredential),
		errors.Is(err, jwt.ErrNoEmployeeID):
		Unauthorized(w, "Credential rejected")

	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
