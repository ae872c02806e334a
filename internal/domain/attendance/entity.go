package attendance

import (
	"time"
)

// AttendanceEntry is the single attendance row for an (employee, date)
// pair. The repository enforces uniqueness with an upsert-on-conflict.
type AttendanceEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time

	IsManual       bool
	IsBusinessTrip bool
	IsSickLeave    bool

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// HasOpenSession reports whether the entry has a check-in without a
// matching check-out.
func (e AttendanceEntry) HasOpenSession() bool {
	return e.CheckIn != nil && e.CheckOut == nil
}
