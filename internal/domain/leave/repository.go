package leave

import (
	"context"
	"time"
)

// LeaveRequestFilter narrows admin listings.
type LeaveRequestFilter struct {
	EmployeeID *string
	Type       *LeaveType
	Status     *LeaveRequestStatus
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListApprovedVacations returns all approved ferie requests for the
	// employee; callers filter by date containment.
	ListApprovedVacations(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// GetApprovedPermission returns the approved permesso for the exact
	// day, or nil when there is none.
	GetApprovedPermission(ctx context.Context, employeeID string, day time.Time) (*LeaveRequest, error)

	// ListApprovedPermissions returns all approved permesso requests for
	// the employee; used by the balance calculator.
	ListApprovedPermissions(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListPending returns all pending requests for the employee; callers
	// filter by date containment.
	ListPending(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, adminNote *string) error

	Delete(ctx context.Context, id string) error
}
