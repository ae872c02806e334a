package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

// midDayMinimumOffsetMinutes: a mid-day permission must start at least
// this long after the work-start time.
const midDayMinimumOffsetMinutes = 30

// Result is the outcome of a single eligibility question. Reasons are
// user-displayable; an infrastructure failure is returned as an error
// instead.
type Result struct {
	OK      bool
	Reasons []string
}

func ok() Result { return Result{OK: true} }

func fail(reasons ...string) Result { return Result{OK: false, Reasons: reasons} }

// RangeResult is the outcome of validating a whole date range.
type RangeResult struct {
	OK         bool
	FailedDate *time.Time
	Reason     string
}

// Conflict is the typed answer for manual attendance entry checks.
type Conflict struct {
	Type     status.ConflictType
	Blocking bool
	Message  string
}

// Service answers the narrow eligibility questions forms ask, all on
// top of the status resolver.
type Service struct {
	resolver status.Resolver
	employee.EmployeeRepository
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
	clock clock.Clock
}

func NewService(
	resolver status.Resolver,
	employeeRepository employee.EmployeeRepository,
	workScheduleRepository schedule.WorkScheduleRepository,
	holidayRepository schedule.HolidayRepository,
	clk clock.Clock,
) *Service {
	return &Service{
		resolver:               resolver,
		EmployeeRepository:     employeeRepository,
		WorkScheduleRepository: workScheduleRepository,
		HolidayRepository:      holidayRepository,
		clock:                  clk,
	}
}

// IsDateSelectableForVacation reports whether the date can be part of
// a new vacation request: not in the past, not a company holiday, not
// hard-blocked.
func (s *Service) IsDateSelectableForVacation(ctx context.Context, employeeID string, date time.Time) (Result, error) {
	day := validator.DateOnly(date)
	today := validator.DateOnly(s.clock.Now())

	if day.Before(today) {
		return fail("date is in the past"), nil
	}

	holiday, err := s.HolidayRepository.GetByDate(ctx, day)
	if err != nil {
		return Result{}, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if holiday != nil {
		return fail(fmt.Sprintf("company holiday: %s", holiday.Name)), nil
	}

	st, err := s.resolver.ResolveStatus(ctx, employeeID, day)
	if err != nil {
		return Result{}, err
	}
	if st.HasHardBlock {
		return fail(st.BlockingReasons...), nil
	}

	return ok(), nil
}

// IsDateSelectableForPermission adds the working-day requirement on
// top of the vacation rules: permissions only make sense on days the
// employee is scheduled to work.
func (s *Service) IsDateSelectableForPermission(ctx context.Context, employeeID string, date time.Time) (Result, error) {
	res, err := s.IsDateSelectableForVacation(ctx, employeeID, date)
	if err != nil || !res.OK {
		return res, err
	}

	working, err := s.isWorkingDay(ctx, employeeID, date)
	if err != nil {
		return Result{}, err
	}
	if !working {
		return fail("not a working day for this employee"), nil
	}

	return ok(), nil
}

// ValidateRangeForVacation runs the per-date check over the inclusive
// range and reports the first conflicting date. A range containing no
// working day at all is a failure of its own, distinct from any
// per-date conflict.
func (s *Service) ValidateRangeForVacation(ctx context.Context, employeeID string, startDate, endDate time.Time) (RangeResult, error) {
	start := validator.DateOnly(startDate)
	end := validator.DateOnly(endDate)
	if end.Before(start) {
		return RangeResult{Reason: "date_to must not precede date_from"}, nil
	}

	hasWorkingDay := false
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		res, err := s.IsDateSelectableForVacation(ctx, employeeID, day)
		if err != nil {
			return RangeResult{}, err
		}
		if !res.OK {
			d := day
			reason := "date is not selectable"
			if len(res.Reasons) > 0 {
				reason = res.Reasons[0]
			}
			return RangeResult{FailedDate: &d, Reason: reason}, nil
		}

		working, err := s.isWorkingDay(ctx, employeeID, day)
		if err != nil {
			return RangeResult{}, err
		}
		if working {
			hasWorkingDay = true
		}
	}

	if !hasWorkingDay {
		return RangeResult{Reason: "no working days in range"}, nil
	}

	return RangeResult{OK: true}, nil
}

// CheckManualAttendanceConflict maps the resolved status into a typed
// conflict for the admin manual-entry form. Hard blocks carry the
// winning conflict type; pending requests and permissions produce a
// non-blocking warning. Nil means no conflict at all.
func (s *Service) CheckManualAttendanceConflict(ctx context.Context, employeeID string, date time.Time) (*Conflict, error) {
	st, err := s.resolver.ResolveStatus(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	if st.HasHardBlock {
		c := &Conflict{Blocking: true}
		if st.Details != nil {
			c.Type = st.Details.Type
		}
		if len(st.BlockingReasons) > 0 {
			c.Message = st.BlockingReasons[0]
		}
		return c, nil
	}

	switch st.Current {
	case status.StatusPermission:
		return &Conflict{
			Type:    status.ConflictPermesso,
			Message: "an approved permission exists for this date",
		}, nil
	case status.StatusPendingRequest:
		return &Conflict{
			Type:    status.ConflictRichiesta,
			Message: "a pending leave request overlaps this date",
		}, nil
	}

	return nil, nil
}

// ValidateAgainstHireDate fails when the requested range begins (or
// ends) before the employee's hire date. This check runs before any
// conflict resolution and short-circuits it.
func (s *Service) ValidateAgainstHireDate(ctx context.Context, employeeID string, startDate time.Time, endDate *time.Time) (Result, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.HireDate == nil {
		return ok(), nil
	}

	hired := validator.DateOnly(*emp.HireDate)
	if validator.DateOnly(startDate).Before(hired) {
		return fail(fmt.Sprintf("start date precedes hire date (%s)", hired.Format("2006-01-02"))), nil
	}
	if endDate != nil && validator.DateOnly(*endDate).Before(hired) {
		return fail(fmt.Sprintf("end date precedes hire date (%s)", hired.Format("2006-01-02"))), nil
	}

	return ok(), nil
}

// ValidatePermissionTimes checks an hourly permission window against
// the employee's work-start time. Both times absent is a legal
// full-day permission; exactly one present is always rejected.
func (s *Service) ValidatePermissionTimes(ctx context.Context, employeeID string, timeFrom, timeTo *string, kind leave.PermissionKind) (Result, error) {
	if timeFrom == nil && timeTo == nil {
		return ok(), nil
	}
	if (timeFrom == nil) != (timeTo == nil) {
		return fail("time_from and time_to must be provided together"), nil
	}

	from, err := validator.MinutesOfDay(*timeFrom)
	if err != nil {
		return fail("time_from is not a valid time of day"), nil
	}
	to, err := validator.MinutesOfDay(*timeTo)
	if err != nil {
		return fail("time_to is not a valid time of day"), nil
	}
	if to <= from {
		return fail("time_to must be after time_from"), nil
	}

	workStart, err := s.effectiveWorkStartMinutes(ctx, employeeID)
	if err != nil {
		return Result{}, err
	}

	switch kind {
	case leave.PermissionStartOfDay:
		diff := from - workStart
		if diff < 0 {
			diff = -diff
		}
		if diff > 60 {
			return fail("a start-of-day permission must begin within 60 minutes of the work start"), nil
		}
	case leave.PermissionMidDay:
		if from < workStart+midDayMinimumOffsetMinutes {
			return fail("a mid-day permission must start at least 30 minutes after the work start"), nil
		}
	default:
		return fail("unknown permission kind"), nil
	}

	return ok(), nil
}

func (s *Service) isWorkingDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	holiday, err := s.HolidayRepository.GetByDate(ctx, validator.DateOnly(date))
	if err != nil {
		return false, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if holiday != nil {
		return false, nil
	}

	sched, err := s.effectiveSchedule(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return sched.WorksOn(date.Weekday()), nil
}

func (s *Service) effectiveSchedule(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	override, err := s.WorkScheduleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	if override != nil {
		return *override, nil
	}
	company, err := s.WorkScheduleRepository.GetCompanyDefault(ctx)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	if company != nil {
		return *company, nil
	}
	return schedule.Default(), nil
}

func (s *Service) effectiveWorkStartMinutes(ctx context.Context, employeeID string) (int, error) {
	sched, err := s.effectiveSchedule(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	start := sched.StartTime
	if start == "" {
		start = schedule.DefaultWorkStart
	}
	minutes, err := validator.MinutesOfDay(start)
	if err != nil {
		minutes, _ = validator.MinutesOfDay(schedule.DefaultWorkStart)
	}
	return minutes, nil
}
