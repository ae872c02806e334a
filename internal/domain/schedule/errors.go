package schedule

import "errors"

// Schedule domain errors
var (
	ErrScheduleNotFound = errors.New("work schedule not found")
	ErrHolidayNotFound  = errors.New("company holiday not found")
	ErrInvalidTimeRange = errors.New("schedule end time must be after start time")
)
