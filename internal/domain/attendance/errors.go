package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrDateBlocked       = errors.New("date is blocked by an approved absence")
	ErrPermissionActive  = errors.New("an hourly permission is active right now")

	// Manual entry conflicts
	ErrSickLeaveConflict    = errors.New("a sick leave covers this date")
	ErrVacationConflict     = errors.New("an approved vacation covers this date")
	ErrBusinessTripConflict = errors.New("an approved business trip covers this date")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
