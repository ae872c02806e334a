package schedule

import "time"

// DefaultWorkStart is the work-start time assumed when no schedule is
// configured at all.
const DefaultWorkStart = "08:00:00"

// WorkSchedule describes the daily working window and which weekdays
// are working days. A row with a nil EmployeeID is the company-wide
// default; a per-employee row overrides it.
type WorkSchedule struct {
	ID         string
	EmployeeID *string

	StartTime string // "HH:MM:SS"
	EndTime   string // "HH:MM:SS"

	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool

	ToleranceMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorksOn reports whether d is flagged as a working day.
func (s WorkSchedule) WorksOn(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	}
	return false
}

// Default returns the fallback schedule used when neither an employee
// override nor a company-wide schedule exists: Monday to Friday,
// 08:00-17:00, 15 minutes tolerance.
func Default() WorkSchedule {
	return WorkSchedule{
		StartTime:        DefaultWorkStart,
		EndTime:          "17:00:00",
		Monday:           true,
		Tuesday:          true,
		Wednesday:        true,
		Thursday:         true,
		Friday:           true,
		ToleranceMinutes: 15,
	}
}

// CompanyHoliday is a non-working day with a display name. Recurring
// holidays repeat on the same month and day every year.
type CompanyHoliday struct {
	ID        string
	Name      string
	Date      time.Time
	Recurring bool

	CreatedAt time.Time
}

// Matches reports whether the holiday falls on the given calendar date.
func (h CompanyHoliday) Matches(d time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == d.Month() && h.Date.Day() == d.Day()
	}
	return h.Date.Year() == d.Year() && h.Date.Month() == d.Month() && h.Date.Day() == d.Day()
}
