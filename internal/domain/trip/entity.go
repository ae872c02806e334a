package trip

import (
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type TripStatus string

const (
	TripStatusPending  TripStatus = "pending"
	TripStatusApproved TripStatus = "approved"
	TripStatusRejected TripStatus = "rejected"
)

// BusinessTrip (trasferta) is an inclusive date range. Only approved
// trips participate in conflict checks.
type BusinessTrip struct {
	ID          string
	EmployeeID  string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Status      TripStatus
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// Covers reports whether the trip spans the given calendar date,
// inclusive on both endpoints.
func (t BusinessTrip) Covers(d time.Time) bool {
	day := validator.DateOnly(d)
	return !day.Before(validator.DateOnly(t.StartDate)) && !day.After(validator.DateOnly(t.EndDate))
}
