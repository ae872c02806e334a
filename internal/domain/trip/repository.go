package trip

import "context"

// BusinessTripRepository defines data access methods for business trips.
type BusinessTripRepository interface {
	Create(ctx context.Context, t BusinessTrip) (BusinessTrip, error)

	GetByID(ctx context.Context, id string) (BusinessTrip, error)

	// ListApproved returns all approved trips for the employee; callers
	// filter by date containment.
	ListApproved(ctx context.Context, employeeID string) ([]BusinessTrip, error)

	List(ctx context.Context) ([]BusinessTrip, error)

	UpdateStatus(ctx context.Context, id string, status TripStatus) error

	Delete(ctx context.Context, id string) error
}
