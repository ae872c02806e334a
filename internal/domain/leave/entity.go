package leave

import (
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type LeaveType string

const (
	// TypeFerie is a vacation request spanning an inclusive date range.
	TypeFerie LeaveType = "ferie"
	// TypePermesso is a single-day permission, optionally restricted to
	// a time-of-day window.
	TypePermesso LeaveType = "permesso"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// PermissionKind distinguishes permissions that start at (or near) the
// work-shift start from permissions taken mid-day. It is a request-time
// classification, not persisted.
type PermissionKind string

const (
	PermissionStartOfDay PermissionKind = "start_of_day"
	PermissionMidDay     PermissionKind = "mid_day"
)

// LeaveRequest entity. Ferie requests carry DateFrom/DateTo, permesso
// requests carry Day plus an optional TimeFrom/TimeTo pair. A permesso
// with both times absent is a full-day permission.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	Status     LeaveRequestStatus

	DateFrom *time.Time
	DateTo   *time.Time

	Day      *time.Time
	TimeFrom *string // "HH:MM:SS"
	TimeTo   *string

	Note      *string
	AdminNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// CoversDate reports whether the request overlaps the given calendar
// date: range containment for ferie, day equality for permesso. Both
// range endpoints are inclusive.
func (r LeaveRequest) CoversDate(d time.Time) bool {
	switch r.Type {
	case TypeFerie:
		if r.DateFrom == nil || r.DateTo == nil {
			return false
		}
		day := validator.DateOnly(d)
		return !day.Before(validator.DateOnly(*r.DateFrom)) && !day.After(validator.DateOnly(*r.DateTo))
	case TypePermesso:
		if r.Day == nil {
			return false
		}
		return validator.SameDate(*r.Day, d)
	}
	return false
}

// IsFullDayPermission reports whether the permesso has no time window
// at all and therefore covers the whole day.
func (r LeaveRequest) IsFullDayPermission() bool {
	return r.Type == TypePermesso && r.TimeFrom == nil && r.TimeTo == nil
}

// HasHourlyWindow reports whether the permesso carries a complete
// time-of-day window.
func (r LeaveRequest) HasHourlyWindow() bool {
	return r.Type == TypePermesso && r.TimeFrom != nil && r.TimeTo != nil
}

// HasMalformedWindow reports the degraded legacy case where only one
// of TimeFrom/TimeTo is set. Callers must reject it, never guess.
func (r LeaveRequest) HasMalformedWindow() bool {
	return r.Type == TypePermesso && (r.TimeFrom == nil) != (r.TimeTo == nil)
}
