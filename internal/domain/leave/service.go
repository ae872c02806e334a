package leave

import "context"

// LeaveService defines business logic for leave requests. Creation
// runs the full validation chain: hire date, per-date eligibility,
// then balance sufficiency.
type LeaveService interface {
	CreateVacationRequest(ctx context.Context, req CreateVacationRequest) (LeaveRequestResponse, error)

	CreatePermissionRequest(ctx context.Context, req CreatePermissionRequest) (LeaveRequestResponse, error)

	Approve(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)

	Reject(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)

	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	ListMine(ctx context.Context, employeeID string, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// Cancel deletes a pending request owned by the employee.
	Cancel(ctx context.Context, id string, employeeID string) error
}
