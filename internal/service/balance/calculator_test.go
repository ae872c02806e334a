package balance

import (
	"context"
	"testing"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func str(s string) *string { return &s }

type fakeEmployees struct {
	employee.EmployeeRepository
	emp employee.Employee
	err error
}

func (f fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.emp, f.err
}

type fakeLeaveRequests struct {
	leave.LeaveRequestRepository
	vacations   []leave.LeaveRequest
	permissions []leave.LeaveRequest
}

func (f fakeLeaveRequests) ListApprovedVacations(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return f.vacations, nil
}

func (f fakeLeaveRequests) ListApprovedPermissions(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return f.permissions, nil
}

type fakeSchedules struct {
	schedule.WorkScheduleRepository
	override *schedule.WorkSchedule
}

func (f fakeSchedules) GetByEmployee(ctx context.Context, employeeID string) (*schedule.WorkSchedule, error) {
	return f.override, nil
}

func (f fakeSchedules) GetCompanyDefault(ctx context.Context) (*schedule.WorkSchedule, error) {
	return nil, nil
}

type fakeHolidays struct {
	schedule.HolidayRepository
	holidays []schedule.CompanyHoliday
}

func (f fakeHolidays) GetByDate(ctx context.Context, d time.Time) (*schedule.CompanyHoliday, error) {
	for _, h := range f.holidays {
		if h.Matches(d) {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:                     "emp-1",
		YearTracking:           employee.YearTrackingFromYearStart,
		VacationDaysPerYear:    20,
		PermissionHoursPerYear: 40,
	}
}

type calcDeps struct {
	emp       employee.Employee
	leaves    fakeLeaveRequests
	schedules fakeSchedules
	holidays  fakeHolidays
}

func newTestCalculator(d calcDeps) *Calculator {
	if d.emp.ID == "" {
		d.emp = testEmployee()
	}
	clk := clock.At(date(2025, time.June, 11))
	return NewCalculator(fakeEmployees{emp: d.emp}, d.leaves, d.schedules, d.holidays, clk)
}

func TestTrackingPeriodCalendarYear(t *testing.T) {
	start, end := trackingPeriod(testEmployee(), date(2025, time.June, 11))

	assert.Equal(t, date(2025, time.January, 1), start)
	assert.Equal(t, date(2025, time.December, 31), end)
}

func TestTrackingPeriodHireAnniversary(t *testing.T) {
	hired := date(2023, time.March, 15)
	emp := testEmployee()
	emp.YearTracking = employee.YearTrackingFromHireDate
	emp.HireDate = &hired

	start, end := trackingPeriod(emp, date(2025, time.June, 11))
	assert.Equal(t, date(2025, time.March, 15), start)
	assert.Equal(t, date(2026, time.March, 14), end)

	// Before this year's anniversary the previous window applies.
	start, end = trackingPeriod(emp, date(2025, time.February, 1))
	assert.Equal(t, date(2024, time.March, 15), start)
	assert.Equal(t, date(2025, time.March, 14), end)
}

func TestTrackingPeriodHireModeWithoutHireDate(t *testing.T) {
	emp := testEmployee()
	emp.YearTracking = employee.YearTrackingFromHireDate

	start, end := trackingPeriod(emp, date(2025, time.June, 11))
	assert.Equal(t, date(2025, time.January, 1), start)
	assert.Equal(t, date(2025, time.December, 31), end)
}

func TestSummarizeCountsWorkingDaysOnly(t *testing.T) {
	// Mon 2025-06-09 through Sun 2025-06-15: five working days.
	c := newTestCalculator(calcDeps{
		leaves: fakeLeaveRequests{vacations: []leave.LeaveRequest{{
			Type:     leave.TypeFerie,
			Status:   leave.LeaveRequestStatusApproved,
			DateFrom: datePtr(2025, time.June, 9),
			DateTo:   datePtr(2025, time.June, 15),
		}}},
	})

	sum, err := c.Summarize(context.Background(), "emp-1", date(2025, time.June, 11))
	require.NoError(t, err)

	assert.True(t, sum.VacationDaysUsed.Equal(decimal.NewFromInt(5)), "used %s", sum.VacationDaysUsed)
	assert.True(t, sum.VacationDaysRemaining.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, date(2025, time.January, 1), sum.PeriodStart)
	assert.Equal(t, date(2025, time.December, 31), sum.PeriodEnd)
}

func TestSummarizeSkipsHolidays(t *testing.T) {
	c := newTestCalculator(calcDeps{
		leaves: fakeLeaveRequests{vacations: []leave.LeaveRequest{{
			Type:     leave.TypeFerie,
			Status:   leave.LeaveRequestStatusApproved,
			DateFrom: datePtr(2025, time.June, 9),
			DateTo:   datePtr(2025, time.June, 13),
		}}},
		holidays: fakeHolidays{holidays: []schedule.CompanyHoliday{
			{Name: "Festa", Date: date(2025, time.June, 10)},
		}},
	})

	sum, err := c.Summarize(context.Background(), "emp-1", date(2025, time.June, 11))
	require.NoError(t, err)
	assert.True(t, sum.VacationDaysUsed.Equal(decimal.NewFromInt(4)), "used %s", sum.VacationDaysUsed)
}

func TestSummarizeClampsVacationsToPeriod(t *testing.T) {
	// Wed 2024-12-25 through Fri 2025-01-03: only the 2025 part counts,
	// and 2025-01-01 falls on a Wednesday working day.
	c := newTestCalculator(calcDeps{
		leaves: fakeLeaveRequests{vacations: []leave.LeaveRequest{{
			Type:     leave.TypeFerie,
			Status:   leave.LeaveRequestStatusApproved,
			DateFrom: datePtr(2024, time.December, 25),
			DateTo:   datePtr(2025, time.January, 3),
		}}},
	})

	sum, err := c.Summarize(context.Background(), "emp-1", date(2025, time.June, 11))
	require.NoError(t, err)
	assert.True(t, sum.VacationDaysUsed.Equal(decimal.NewFromInt(3)), "used %s", sum.VacationDaysUsed)
}

func TestSummarizePermissionHours(t *testing.T) {
	c := newTestCalculator(calcDeps{
		leaves: fakeLeaveRequests{permissions: []leave.LeaveRequest{
			{
				Type:     leave.TypePermesso,
				Status:   leave.LeaveRequestStatusApproved,
				Day:      datePtr(2025, time.May, 5),
				TimeFrom: str("09:00:00"),
				TimeTo:   str("10:30:00"),
			},
			// Full day: priced at the scheduled day length (9 hours).
			{
				Type:   leave.TypePermesso,
				Status: leave.LeaveRequestStatusApproved,
				Day:    datePtr(2025, time.May, 6),
			},
			// Malformed legacy row: excluded from the count.
			{
				Type:     leave.TypePermesso,
				Status:   leave.LeaveRequestStatusApproved,
				Day:      datePtr(2025, time.May, 7),
				TimeFrom: str("09:00:00"),
			},
			// Outside the tracking period.
			{
				Type:     leave.TypePermesso,
				Status:   leave.LeaveRequestStatusApproved,
				Day:      datePtr(2024, time.May, 5),
				TimeFrom: str("09:00:00"),
				TimeTo:   str("17:00:00"),
			},
		}},
	})

	sum, err := c.Summarize(context.Background(), "emp-1", date(2025, time.June, 11))
	require.NoError(t, err)

	assert.True(t, sum.PermissionHoursUsed.Equal(decimal.RequireFromString("10.5")), "used %s", sum.PermissionHoursUsed)
	assert.True(t, sum.PermissionHoursRemaining.Equal(decimal.RequireFromString("29.5")))
}

func TestCheckVacationDays(t *testing.T) {
	emp := testEmployee()
	emp.VacationDaysPerYear = 3
	c := newTestCalculator(calcDeps{emp: emp})

	// Mon through Fri asks for 5 days against a balance of 3.
	check, err := c.CheckVacationDays(context.Background(), "emp-1", date(2025, time.June, 9), date(2025, time.June, 13))
	require.NoError(t, err)

	assert.False(t, check.OK)
	assert.True(t, check.Requested.Equal(decimal.NewFromInt(5)))
	assert.True(t, check.Remaining.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "insufficient vacation days: 5 requested, 3 remaining", check.Message)

	check, err = c.CheckVacationDays(context.Background(), "emp-1", date(2025, time.June, 9), date(2025, time.June, 11))
	require.NoError(t, err)
	assert.True(t, check.OK)
}

func TestCheckVacationDaysAccountsForUsage(t *testing.T) {
	c := newTestCalculator(calcDeps{
		leaves: fakeLeaveRequests{vacations: []leave.LeaveRequest{{
			Type:     leave.TypeFerie,
			Status:   leave.LeaveRequestStatusApproved,
			DateFrom: datePtr(2025, time.June, 2),
			DateTo:   datePtr(2025, time.June, 6),
		}}},
	})

	check, err := c.CheckVacationDays(context.Background(), "emp-1", date(2025, time.June, 9), date(2025, time.June, 13))
	require.NoError(t, err)

	assert.True(t, check.OK)
	assert.True(t, check.Remaining.Equal(decimal.NewFromInt(15)), "remaining %s", check.Remaining)
}

func TestCheckPermissionHours(t *testing.T) {
	emp := testEmployee()
	emp.PermissionHoursPerYear = 2
	c := newTestCalculator(calcDeps{emp: emp})

	check, err := c.CheckPermissionHours(context.Background(), "emp-1", date(2025, time.June, 11), str("09:00:00"), str("10:30:00"))
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.True(t, check.Requested.Equal(decimal.RequireFromString("1.5")))

	// A full day costs the scheduled 9 hours and exceeds the balance.
	check, err = c.CheckPermissionHours(context.Background(), "emp-1", date(2025, time.June, 11), nil, nil)
	require.NoError(t, err)
	assert.False(t, check.OK)
	assert.True(t, check.Requested.Equal(decimal.NewFromInt(9)))
}

func TestCheckPermissionHoursUsesScheduleOverride(t *testing.T) {
	override := schedule.Default()
	override.StartTime = "09:00:00"
	override.EndTime = "13:00:00"
	c := newTestCalculator(calcDeps{
		schedules: fakeSchedules{override: &override},
	})

	check, err := c.CheckPermissionHours(context.Background(), "emp-1", date(2025, time.June, 11), nil, nil)
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.True(t, check.Requested.Equal(decimal.NewFromInt(4)), "requested %s", check.Requested)
}
