package status

import (
	"context"
	"fmt"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

// startOfDayWindowMinutes: a permission starting within this many
// minutes of the work-start time counts as start-of-day.
const startOfDayWindowMinutes = 60

type ResolverImpl struct {
	sickleave.SickLeaveRepository
	leave.LeaveRequestRepository
	trip.BusinessTripRepository
	attendance.AttendanceRepository
	schedule.WorkScheduleRepository
	clock clock.Clock
}

func NewResolver(
	sickLeaveRepository sickleave.SickLeaveRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	businessTripRepository trip.BusinessTripRepository,
	attendanceRepository attendance.AttendanceRepository,
	workScheduleRepository schedule.WorkScheduleRepository,
	clk clock.Clock,
) status.Resolver {
	return &ResolverImpl{
		SickLeaveRepository:    sickLeaveRepository,
		LeaveRequestRepository: leaveRequestRepository,
		BusinessTripRepository: businessTripRepository,
		AttendanceRepository:   attendanceRepository,
		WorkScheduleRepository: workScheduleRepository,
		clock:                  clk,
	}
}

// ResolveStatus implements status.Resolver.
//
// Evaluation is strictly sequential and short-circuits on the first
// match: sick leave, approved vacation, approved business trip,
// approved permission, existing attendance, pending requests. Empty
// lookups mean "no conflict of that kind"; any lookup error aborts the
// whole call.
func (r *ResolverImpl) ResolveStatus(ctx context.Context, employeeID string, date time.Time) (status.EmployeeStatus, error) {
	res := status.EmployeeStatus{
		Current:                status.StatusAvailable,
		ConflictPriority:       status.PriorityNone,
		AllowPermissionOverlap: true,
		BlockingReasons:        []string{},
	}

	// Missing identity is not an error: callers cannot proceed anyway,
	// but the date itself is not blocked.
	if employeeID == "" {
		res.BlockingReasons = append(res.BlockingReasons, "employee identity not resolved")
		return res, nil
	}

	day := validator.DateOnly(date)

	// Priority 5: sick leave.
	sicks, err := r.SickLeaveRepository.ListCovering(ctx, employeeID, day)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	if len(sicks) > 0 {
		s := sicks[0]
		start, end := s.StartDate, s.EndDate
		res.Current = status.StatusSick
		res.ConflictPriority = status.PrioritySick
		res.HasHardBlock = true
		res.AllowPermissionOverlap = false
		res.BlockingReasons = append(res.BlockingReasons,
			fmt.Sprintf("sick leave from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
		res.Details = &status.Detail{
			Type:      status.ConflictMalattia,
			StartDate: &start,
			EndDate:   &end,
			Notes:     s.Notes,
		}
		return res, nil
	}

	// Priority 4: approved vacation.
	vacations, err := r.LeaveRequestRepository.ListApprovedVacations(ctx, employeeID)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to list approved vacations: %w", err)
	}
	for _, v := range vacations {
		if !v.CoversDate(day) {
			continue
		}
		res.Current = status.StatusVacation
		res.ConflictPriority = status.PriorityVacation
		res.HasHardBlock = true
		res.AllowPermissionOverlap = false
		res.BlockingReasons = append(res.BlockingReasons,
			fmt.Sprintf("approved vacation from %s to %s", v.DateFrom.Format("2006-01-02"), v.DateTo.Format("2006-01-02")))
		res.Details = &status.Detail{
			Type:      status.ConflictFerie,
			StartDate: v.DateFrom,
			EndDate:   v.DateTo,
			Notes:     v.Note,
		}
		return res, nil
	}

	// Priority 2: approved business trip. Evaluated before permission
	// even though its priority number is lower; see status.Priority.
	trips, err := r.BusinessTripRepository.ListApproved(ctx, employeeID)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to list approved business trips: %w", err)
	}
	for _, t := range trips {
		if !t.Covers(day) {
			continue
		}
		start, end := t.StartDate, t.EndDate
		res.Current = status.StatusBusinessTrip
		res.ConflictPriority = status.PriorityBusinessTrip
		res.HasHardBlock = true
		res.AllowPermissionOverlap = false
		res.BlockingReasons = append(res.BlockingReasons,
			fmt.Sprintf("business trip to %s from %s to %s", t.Destination, start.Format("2006-01-02"), end.Format("2006-01-02")))
		res.Details = &status.Detail{
			Type:      status.ConflictTrasferta,
			StartDate: &start,
			EndDate:   &end,
			Notes:     t.Notes,
		}
		return res, nil
	}

	// Priority 3: approved permission.
	perm, err := r.LeaveRequestRepository.GetApprovedPermission(ctx, employeeID, day)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to get approved permission: %w", err)
	}
	if perm != nil {
		if err := r.applyPermission(ctx, &res, employeeID, perm); err != nil {
			return status.EmployeeStatus{}, err
		}
		return res, nil
	}

	// Priority 1: an attendance entry already exists. Entries generated
	// from business trips do not count here.
	entry, err := r.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	if entry != nil && !entry.IsBusinessTrip {
		res.Current = status.StatusAlreadyPresent
		res.ConflictPriority = status.PriorityAttendance
		res.CanCheckOut = entry.HasOpenSession()
		res.Details = &status.Detail{
			Type:      status.ConflictPresenza,
			StartDate: &entry.Date,
			EndDate:   &entry.Date,
			Notes:     entry.Notes,
		}
		return res, nil
	}

	// Priority 0: pending requests, informational only.
	pendings, err := r.LeaveRequestRepository.ListPending(ctx, employeeID)
	if err != nil {
		return status.EmployeeStatus{}, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	for _, p := range pendings {
		if !p.CoversDate(day) {
			continue
		}
		res.Current = status.StatusPendingRequest
		res.ConflictPriority = status.PriorityNone
		res.BlockingReasons = append(res.BlockingReasons,
			fmt.Sprintf("a %s request is awaiting approval for this date", p.Type))
		res.Details = &status.Detail{
			Type:      status.ConflictRichiesta,
			StartDate: p.DateFrom,
			EndDate:   p.DateTo,
			TimeFrom:  p.TimeFrom,
			TimeTo:    p.TimeTo,
			Notes:     p.Note,
		}
		if p.Type == leave.TypePermesso {
			res.Details.StartDate = p.Day
			res.Details.EndDate = p.Day
		}
		break
	}

	// Work-day evaluation: only for today, and only when nothing with a
	// real priority fired.
	if validator.SameDate(day, r.clock.Now()) {
		sched, err := r.effectiveSchedule(ctx, employeeID)
		if err != nil {
			return status.EmployeeStatus{}, err
		}
		if !sched.WorksOn(day.Weekday()) {
			res.BlockingReasons = append(res.BlockingReasons, "today is not a configured working day")
		}
	}

	return res, nil
}

// applyPermission fills the permission sub-state. Only reached when no
// higher-priority conflict fired.
func (r *ResolverImpl) applyPermission(ctx context.Context, res *status.EmployeeStatus, employeeID string, perm *leave.LeaveRequest) error {
	if perm.HasMalformedWindow() {
		// Legacy rows with a single endpoint are rejected outright
		// rather than guessed at.
		return leave.ErrMalformedPermission
	}

	res.Current = status.StatusPermission
	res.ConflictPriority = status.PriorityPermission
	res.HasHardBlock = false
	res.AllowPermissionOverlap = true
	res.Details = &status.Detail{
		Type:      status.ConflictPermesso,
		StartDate: perm.Day,
		EndDate:   perm.Day,
		TimeFrom:  perm.TimeFrom,
		TimeTo:    perm.TimeTo,
		Notes:     perm.Note,
	}

	if perm.IsFullDayPermission() {
		res.BlockingReasons = append(res.BlockingReasons, "full-day permission for this date")
		return nil
	}

	// Hourly permission.
	res.HasHourlyPermission = true
	res.PermissionEndTime = perm.TimeTo

	from, err := validator.MinutesOfDay(*perm.TimeFrom)
	if err != nil {
		return fmt.Errorf("failed to parse permission time_from: %w", err)
	}
	to, err := validator.MinutesOfDay(*perm.TimeTo)
	if err != nil {
		return fmt.Errorf("failed to parse permission time_to: %w", err)
	}

	workStart, err := r.effectiveWorkStartMinutes(ctx, employeeID)
	if err != nil {
		return err
	}

	diff := from - workStart
	if diff < 0 {
		diff = -diff
	}
	if diff <= startOfDayWindowMinutes {
		res.IsStartOfDayPermission = true
	} else {
		res.IsMidDayPermission = true
	}

	now := validator.ClockMinutes(r.clock.Now())
	res.IsPermissionExpired = now > to
	// A second check-in only ever makes sense for mid-day permissions:
	// after a start-of-day permission the first check-in is still ahead.
	res.CanSecondCheckIn = res.IsMidDayPermission && res.IsPermissionExpired

	if now >= from && now <= to {
		res.BlockingReasons = append(res.BlockingReasons,
			fmt.Sprintf("hourly permission active until %s", *perm.TimeTo))
	}

	return nil
}

// effectiveSchedule returns the employee override, else the company
// default, else the built-in fallback.
func (r *ResolverImpl) effectiveSchedule(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	override, err := r.WorkScheduleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	if override != nil {
		return *override, nil
	}
	company, err := r.WorkScheduleRepository.GetCompanyDefault(ctx)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	if company != nil {
		return *company, nil
	}
	return schedule.Default(), nil
}

func (r *ResolverImpl) effectiveWorkStartMinutes(ctx context.Context, employeeID string) (int, error) {
	sched, err := r.effectiveSchedule(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	start := sched.StartTime
	if start == "" {
		start = schedule.DefaultWorkStart
	}
	minutes, err := validator.MinutesOfDay(start)
	if err != nil {
		// A corrupt schedule row falls back to the default work start.
		minutes, _ = validator.MinutesOfDay(schedule.DefaultWorkStart)
	}
	return minutes, nil
}
