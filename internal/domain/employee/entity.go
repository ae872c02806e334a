package employee

import "time"

// YearTrackingMode selects the reference window for yearly balances:
// the calendar year or the hire-date anniversary year.
type YearTrackingMode string

const (
	YearTrackingFromYearStart YearTrackingMode = "from_year_start"
	YearTrackingFromHireDate  YearTrackingMode = "from_hire_date"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	IsAdmin      bool

	HireDate     *time.Time
	YearTracking YearTrackingMode

	// Yearly allowances consumed by the balance calculator.
	VacationDaysPerYear    float64
	PermissionHoursPerYear float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
