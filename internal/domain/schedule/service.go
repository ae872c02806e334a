package schedule

import "context"

// ScheduleService defines business logic for work schedules and
// company holidays.
type ScheduleService interface {
	// GetEffective returns the schedule in force for the employee: the
	// override if present, else the company default, else the built-in
	// fallback.
	GetEffective(ctx context.Context, employeeID string) (ScheduleResponse, error)

	UpsertCompanyDefault(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)

	UpsertEmployeeOverride(ctx context.Context, employeeID string, req UpsertScheduleRequest) (ScheduleResponse, error)

	DeleteEmployeeOverride(ctx context.Context, employeeID string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)

	ListHolidays(ctx context.Context) ([]HolidayResponse, error)

	DeleteHoliday(ctx context.Context, id string) error
}
