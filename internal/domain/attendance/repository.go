package attendance

import (
	"context"
	"time"
)

// AttendanceFilter narrows admin listings.
type AttendanceFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

// AttendanceRepository defines data access methods for attendance
// entries.
type AttendanceRepository interface {
	// Upsert inserts the entry or, when a row for (employee, date)
	// already exists, replaces its mutable fields. This uniqueness is
	// the data layer's backstop against racing writers.
	Upsert(ctx context.Context, entry AttendanceEntry) (AttendanceEntry, error)

	GetByID(ctx context.Context, id string) (AttendanceEntry, error)

	// GetByEmployeeAndDate returns the entry for the exact date, or nil
	// when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceEntry, error)

	// SetCheckOut records the check-out time on an existing entry.
	SetCheckOut(ctx context.Context, id string, checkOut *time.Time) error

	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceEntry, int64, error)

	Delete(ctx context.Context, id string) error
}
