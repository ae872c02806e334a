package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Check is the pass/fail answer the request forms combine with the
// conflict engine's verdict.
type Check struct {
	OK        bool
	Message   string
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

// Summary is the employee-facing balance view for one tracking period.
type Summary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	VacationDaysTotal     decimal.Decimal `json:"vacation_days_total"`
	VacationDaysUsed      decimal.Decimal `json:"vacation_days_used"`
	VacationDaysRemaining decimal.Decimal `json:"vacation_days_remaining"`

	PermissionHoursTotal     decimal.Decimal `json:"permission_hours_total"`
	PermissionHoursUsed      decimal.Decimal `json:"permission_hours_used"`
	PermissionHoursRemaining decimal.Decimal `json:"permission_hours_remaining"`
}

// Calculator tracks remaining vacation days and permission hours per
// employee tracking period. It never resolves conflicts; callers
// combine its answer with the status engine.
type Calculator struct {
	employee.EmployeeRepository
	leave.LeaveRequestRepository
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
	clock clock.Clock
}

func NewCalculator(
	employeeRepository employee.EmployeeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	workScheduleRepository schedule.WorkScheduleRepository,
	holidayRepository schedule.HolidayRepository,
	clk clock.Clock,
) *Calculator {
	return &Calculator{
		EmployeeRepository:     employeeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		WorkScheduleRepository: workScheduleRepository,
		HolidayRepository:      holidayRepository,
		clock:                  clk,
	}
}

// Summarize computes the balance for the tracking period containing
// the reference date.
func (c *Calculator) Summarize(ctx context.Context, employeeID string, ref time.Time) (Summary, error) {
	emp, err := c.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	periodStart, periodEnd := trackingPeriod(emp, validator.DateOnly(ref))

	usedDays, err := c.usedVacationDays(ctx, emp, periodStart, periodEnd)
	if err != nil {
		return Summary{}, err
	}
	usedHours, err := c.usedPermissionHours(ctx, emp, periodStart, periodEnd)
	if err != nil {
		return Summary{}, err
	}

	totalDays := decimal.NewFromFloat(emp.VacationDaysPerYear)
	totalHours := decimal.NewFromFloat(emp.PermissionHoursPerYear)

	return Summary{
		PeriodStart:              periodStart,
		PeriodEnd:                periodEnd,
		VacationDaysTotal:        totalDays,
		VacationDaysUsed:         usedDays,
		VacationDaysRemaining:    totalDays.Sub(usedDays),
		PermissionHoursTotal:     totalHours,
		PermissionHoursUsed:      usedHours,
		PermissionHoursRemaining: totalHours.Sub(usedHours),
	}, nil
}

// CheckVacationDays verifies that the requested range fits in the
// remaining vacation-day balance of its tracking period.
func (c *Calculator) CheckVacationDays(ctx context.Context, employeeID string, startDate, endDate time.Time) (Check, error) {
	emp, err := c.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return Check{}, fmt.Errorf("failed to get employee: %w", err)
	}

	periodStart, periodEnd := trackingPeriod(emp, validator.DateOnly(startDate))

	used, err := c.usedVacationDays(ctx, emp, periodStart, periodEnd)
	if err != nil {
		return Check{}, err
	}

	from, to := clampRange(startDate, endDate, periodStart, periodEnd)
	requested, err := c.workingDaysIn(ctx, emp.ID, from, to)
	if err != nil {
		return Check{}, err
	}

	total := decimal.NewFromFloat(emp.VacationDaysPerYear)
	remaining := total.Sub(used)
	if requested.GreaterThan(remaining) {
		return Check{
			OK:        false,
			Message:   fmt.Sprintf("insufficient vacation days: %s requested, %s remaining", requested, remaining),
			Requested: requested,
			Remaining: remaining,
		}, nil
	}

	return Check{OK: true, Requested: requested, Remaining: remaining}, nil
}

// CheckPermissionHours verifies that the requested permission fits in
// the remaining permission-hour balance of its tracking period. A
// full-day permission costs the scheduled day length.
func (c *Calculator) CheckPermissionHours(ctx context.Context, employeeID string, day time.Time, timeFrom, timeTo *string) (Check, error) {
	emp, err := c.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return Check{}, fmt.Errorf("failed to get employee: %w", err)
	}

	periodStart, periodEnd := trackingPeriod(emp, validator.DateOnly(day))

	used, err := c.usedPermissionHours(ctx, emp, periodStart, periodEnd)
	if err != nil {
		return Check{}, err
	}

	requested, err := c.permissionHours(ctx, emp.ID, timeFrom, timeTo)
	if err != nil {
		return Check{}, err
	}

	total := decimal.NewFromFloat(emp.PermissionHoursPerYear)
	remaining := total.Sub(used)
	if requested.GreaterThan(remaining) {
		return Check{
			OK:        false,
			Message:   fmt.Sprintf("insufficient permission hours: %s requested, %s remaining", requested, remaining),
			Requested: requested,
			Remaining: remaining,
		}, nil
	}

	return Check{OK: true, Requested: requested, Remaining: remaining}, nil
}

// clampRange intersects [from, to] with [lo, hi].
func clampRange(from, to, lo, hi time.Time) (time.Time, time.Time) {
	from = validator.DateOnly(from)
	to = validator.DateOnly(to)
	if from.Before(lo) {
		from = lo
	}
	if to.After(hi) {
		to = hi
	}
	return from, to
}

// trackingPeriod returns the inclusive window balances are counted in:
// the calendar year, or the hire-date anniversary year containing ref.
func trackingPeriod(emp employee.Employee, ref time.Time) (time.Time, time.Time) {
	if emp.YearTracking == employee.YearTrackingFromHireDate && emp.HireDate != nil {
		hired := validator.DateOnly(*emp.HireDate)
		anniversary := time.Date(ref.Year(), hired.Month(), hired.Day(), 0, 0, 0, 0, time.UTC)
		if anniversary.After(ref) {
			anniversary = anniversary.AddDate(-1, 0, 0)
		}
		return anniversary, anniversary.AddDate(1, 0, -1)
	}
	start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

func (c *Calculator) usedVacationDays(ctx context.Context, emp employee.Employee, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	vacations, err := c.LeaveRequestRepository.ListApprovedVacations(ctx, emp.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list approved vacations: %w", err)
	}

	used := decimal.Zero
	for _, v := range vacations {
		if v.DateFrom == nil || v.DateTo == nil {
			continue
		}
		from, to := clampRange(*v.DateFrom, *v.DateTo, periodStart, periodEnd)
		if to.Before(from) {
			continue
		}
		days, err := c.workingDaysIn(ctx, emp.ID, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		used = used.Add(days)
	}
	return used, nil
}

func (c *Calculator) usedPermissionHours(ctx context.Context, emp employee.Employee, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	permissions, err := c.LeaveRequestRepository.ListApprovedPermissions(ctx, emp.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list approved permissions: %w", err)
	}

	used := decimal.Zero
	for _, p := range permissions {
		if p.Day == nil {
			continue
		}
		day := validator.DateOnly(*p.Day)
		if day.Before(periodStart) || day.After(periodEnd) {
			continue
		}
		if p.HasMalformedWindow() {
			// Legacy rows with a single endpoint are excluded from the
			// count rather than guessed at.
			continue
		}
		hours, err := c.permissionHours(ctx, emp.ID, p.TimeFrom, p.TimeTo)
		if err != nil {
			return decimal.Zero, err
		}
		used = used.Add(hours)
	}
	return used, nil
}

// permissionHours prices a permission: the window length for hourly
// ones, the scheduled day length for full-day ones.
func (c *Calculator) permissionHours(ctx context.Context, employeeID string, timeFrom, timeTo *string) (decimal.Decimal, error) {
	if timeFrom != nil && timeTo != nil {
		from, err := validator.MinutesOfDay(*timeFrom)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse time_from: %w", err)
		}
		to, err := validator.MinutesOfDay(*timeTo)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse time_to: %w", err)
		}
		if to <= from {
			return decimal.Zero, nil
		}
		return decimal.NewFromInt(int64(to - from)).Div(decimal.NewFromInt(60)), nil
	}

	sched, err := c.effectiveSchedule(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}
	start, err := validator.MinutesOfDay(sched.StartTime)
	if err != nil {
		start = 0
	}
	end, err := validator.MinutesOfDay(sched.EndTime)
	if err != nil || end <= start {
		return decimal.NewFromInt(8), nil
	}
	return decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60)), nil
}

// workingDaysIn counts schedule working days in the inclusive range,
// skipping company holidays.
func (c *Calculator) workingDaysIn(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	if to.Before(from) {
		return decimal.Zero, nil
	}

	sched, err := c.effectiveSchedule(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}

	count := int64(0)
	for day := validator.DateOnly(from); !day.After(validator.DateOnly(to)); day = day.AddDate(0, 0, 1) {
		if !sched.WorksOn(day.Weekday()) {
			continue
		}
		holiday, err := c.HolidayRepository.GetByDate(ctx, day)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to look up holiday: %w", err)
		}
		if holiday != nil {
			continue
		}
		count++
	}
	return decimal.NewFromInt(count), nil
}

func (c *Calculator) effectiveSchedule(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	override, err := c.WorkScheduleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	if override != nil {
		return *override, nil
	}
	company, err := c.WorkScheduleRepository.GetCompanyDefault(ctx)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	if company != nil {
		return *company, nil
	}
	return schedule.Default(), nil
}
