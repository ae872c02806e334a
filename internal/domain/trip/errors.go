package trip

import "errors"

// Business trip domain errors
var (
	ErrTripNotFound         = errors.New("business trip not found")
	ErrInvalidDateRange     = errors.New("end_date must not precede start_date")
	ErrTripAlreadyProcessed = errors.New("business trip has already been approved or rejected")
)
