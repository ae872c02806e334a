package sickleave

import (
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

// SickLeave (malattia) is an inclusive date range entered by an
// administrator. Immutable once created except by explicit deletion.
type SickLeave struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reference  *string // protocol/certificate code
	Notes      *string

	CreatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// Covers reports whether the sick leave spans the given calendar date,
// inclusive on both endpoints.
func (s SickLeave) Covers(d time.Time) bool {
	day := validator.DateOnly(d)
	return !day.Before(validator.DateOnly(s.StartDate)) && !day.After(validator.DateOnly(s.EndDate))
}
