package status

import (
	"context"
	"time"
)

// Status is the single resolved state of an employee on a date.
type Status string

const (
	StatusAvailable      Status = "available"
	StatusSick           Status = "sick"
	StatusVacation       Status = "vacation"
	StatusPermission     Status = "permission"
	StatusBusinessTrip   Status = "business_trip"
	StatusPendingRequest Status = "pending_request"
	StatusAlreadyPresent Status = "already_present"
)

// Priority is the reported weight of a conflict, 0 meaning none.
//
// The numeric value is informative for callers ordering simultaneous
// conflicts; it is NOT the evaluation order. Resolution always runs
// sick -> vacation -> business trip -> permission -> attendance ->
// pending and short-circuits on the first match, so a business trip
// (priority 2) wins over a permission (priority 3) despite the lower
// number. Inherited behavior, kept as is.
type Priority int

const (
	PriorityNone         Priority = 0
	PriorityAttendance   Priority = 1
	PriorityBusinessTrip Priority = 2
	PriorityPermission   Priority = 3
	PriorityVacation     Priority = 4
	PrioritySick         Priority = 5
)

// ConflictType labels the winning record with its domain name.
type ConflictType string

const (
	ConflictMalattia  ConflictType = "malattia"
	ConflictFerie     ConflictType = "ferie"
	ConflictTrasferta ConflictType = "trasferta"
	ConflictPermesso  ConflictType = "permesso"
	ConflictPresenza  ConflictType = "presenza"
	ConflictRichiesta ConflictType = "richiesta"
)

// Detail describes the winning conflict.
type Detail struct {
	Type      ConflictType `json:"type"`
	StartDate *time.Time   `json:"start_date,omitempty"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	TimeFrom  *string      `json:"time_from,omitempty"`
	TimeTo    *string      `json:"time_to,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
}

// EmployeeStatus is the engine's full answer for one employee and one
// calendar date.
type EmployeeStatus struct {
	Current          Status   `json:"current_status"`
	ConflictPriority Priority `json:"conflict_priority"`

	// HasHardBlock is true only when the date is unavailable for any
	// new action: sick leave, approved vacation, approved business trip.
	HasHardBlock bool `json:"has_hard_block"`

	// AllowPermissionOverlap is false exactly when HasHardBlock is true.
	AllowPermissionOverlap bool `json:"allow_permission_overlap"`

	BlockingReasons []string `json:"blocking_reasons"`
	Details         *Detail  `json:"status_details,omitempty"`

	// Permission sub-state, meaningful only when Current is
	// StatusPermission.
	HasHourlyPermission    bool    `json:"has_hourly_permission"`
	IsPermissionExpired    bool    `json:"is_permission_expired"`
	CanSecondCheckIn       bool    `json:"can_second_check_in"`
	PermissionEndTime      *string `json:"permission_end_time,omitempty"`
	IsStartOfDayPermission bool    `json:"is_start_of_day_permission"`
	IsMidDayPermission     bool    `json:"is_mid_day_permission"`

	// CanCheckOut is meaningful only when Current is
	// StatusAlreadyPresent.
	CanCheckOut bool `json:"can_check_out"`
}

// PermissionBlocks reports whether the resolved permission forbids a
// new action right now: a full-day permission, or an hourly one whose
// window contains the current time.
func (s EmployeeStatus) PermissionBlocks() bool {
	return s.Current == StatusPermission && len(s.BlockingReasons) > 0
}

// Resolver evaluates all overlapping records for an employee and a
// date, in strict priority order, and returns a single resolved
// status. Lookups that find nothing are "no conflict of that kind",
// not errors; a failed lookup aborts the whole resolution.
type Resolver interface {
	ResolveStatus(ctx context.Context, employeeID string, date time.Time) (EmployeeStatus, error)
}
