package attendance

import "errors"

// Attendance domain errors
var (
	// Local state-machine guards, caught before any network call
	ErrAlreadyClockedIn = errors.New("you have already clocked in today")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")

	// Collaborator failures
	ErrRemoteUnavailable   = errors.New("attendance store is unavailable")
	ErrUnauthorized        = errors.New("credential rejected by attendance store")
	ErrLocationUnavailable = errors.New("device location could not be acquired")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
