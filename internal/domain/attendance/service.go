package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
// Check-in and check-out are gated by the status resolver.
type AttendanceService interface {
	// CheckIn records today's check-in for the employee, honoring hard
	// blocks, active permissions and the second check-in rule.
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut closes today's open session.
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CreateManualEntry inserts an admin-entered attendance row after
	// conflict checking. Non-blocking conflicts produce a warning.
	CreateManualEntry(ctx context.Context, req ManualEntryRequest) (ManualEntryResponse, error)

	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	ListMine(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	Delete(ctx context.Context, id string) error
}
