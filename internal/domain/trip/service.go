package trip

import "context"

// TripService defines business logic for business trips. Approving a
// trip materializes attendance entries for its working days.
type TripService interface {
	Create(ctx context.Context, req CreateTripRequest) (TripResponse, error)

	Approve(ctx context.Context, id string) (TripResponse, error)

	Reject(ctx context.Context, id string) (TripResponse, error)

	List(ctx context.Context) ([]TripResponse, error)

	Delete(ctx context.Context, id string) error
}
