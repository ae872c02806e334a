package schedule

import (
	"context"
	"time"
)

// WorkScheduleRepository defines data access methods for work schedules.
type WorkScheduleRepository interface {
	// GetCompanyDefault returns the company-wide schedule, or nil when
	// none is configured.
	GetCompanyDefault(ctx context.Context) (*WorkSchedule, error)

	// GetByEmployee returns the employee-specific override, or nil when
	// the employee follows the company default.
	GetByEmployee(ctx context.Context, employeeID string) (*WorkSchedule, error)

	// Upsert inserts or replaces a schedule row. The company default and
	// each employee override are unique.
	Upsert(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)

	// DeleteEmployeeOverride removes the employee-specific schedule.
	DeleteEmployeeOverride(ctx context.Context, employeeID string) error
}

// HolidayRepository defines data access methods for company holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h CompanyHoliday) (CompanyHoliday, error)

	List(ctx context.Context) ([]CompanyHoliday, error)

	// GetByDate returns the holiday covering the given calendar date,
	// matching recurring holidays on month and day. Nil when the date is
	// not a holiday.
	GetByDate(ctx context.Context, date time.Time) (*CompanyHoliday, error)

	Delete(ctx context.Context, id string) error
}
