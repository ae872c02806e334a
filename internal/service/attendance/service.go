package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/presenze-hr/presenze-backend-go/internal/service/eligibility"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	resolver    status.Resolver
	eligibility *eligibility.Service
	clock       clock.Clock
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	resolver status.Resolver,
	eligibilityService *eligibility.Service,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		resolver:             resolver,
		eligibility:          eligibilityService,
		clock:                clk,
	}
}

// CheckIn implements attendance.AttendanceService.
//
// The resolved status is advisory at submit time: a concurrent write
// can still race, and the repository's (employee, date) uniqueness is
// the final backstop.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.clock.Now()

	st, err := a.resolver.ResolveStatus(ctx, employeeID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if st.HasHardBlock {
		return attendance.AttendanceResponse{}, attendance.ErrDateBlocked
	}

	if st.Current == status.StatusPermission {
		if st.PermissionBlocks() {
			return attendance.AttendanceResponse{}, attendance.ErrPermissionActive
		}
		// After a mid-day permission expires the employee may check in
		// again, re-opening the day's single entry.
		entry, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, validator.DateOnly(now))
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance entry: %w", err)
		}
		if entry != nil {
			if !st.CanSecondCheckIn {
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
			}
			if err := a.AttendanceRepository.SetCheckOut(ctx, entry.ID, nil); err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to reopen attendance session: %w", err)
			}
			entry.CheckOut = nil
			return attendance.ToResponse(*entry), nil
		}
	}

	if st.Current == status.StatusAlreadyPresent {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	entry := attendance.AttendanceEntry{
		EmployeeID: employeeID,
		Date:       validator.DateOnly(now),
		CheckIn:    &now,
	}

	created, err := a.AttendanceRepository.Upsert(ctx, entry)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance entry: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.clock.Now()

	entry, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, validator.DateOnly(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	if entry == nil || entry.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if entry.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if err := a.AttendanceRepository.SetCheckOut(ctx, entry.ID, &now); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	entry.CheckOut = &now
	return attendance.ToResponse(*entry), nil
}

// CreateManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.ManualEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ManualEntryResponse{}, err
	}

	date, err := validator.ParseDate(req.Date)
	if err != nil {
		return attendance.ManualEntryResponse{}, err
	}

	conflict, err := a.eligibility.CheckManualAttendanceConflict(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.ManualEntryResponse{}, err
	}

	var warning *string
	if conflict != nil {
		if conflict.Blocking {
			switch conflict.Type {
			case status.ConflictMalattia:
				return attendance.ManualEntryResponse{}, attendance.ErrSickLeaveConflict
			case status.ConflictFerie:
				return attendance.ManualEntryResponse{}, attendance.ErrVacationConflict
			case status.ConflictTrasferta:
				return attendance.ManualEntryResponse{}, attendance.ErrBusinessTripConflict
			default:
				return attendance.ManualEntryResponse{}, attendance.ErrDateBlocked
			}
		}
		warning = &conflict.Message
	}

	entry := attendance.AttendanceEntry{
		EmployeeID: req.EmployeeID,
		Date:       date,
		IsManual:   true,
		Notes:      req.Notes,
	}
	if req.CheckIn != nil {
		entry.CheckIn = timeOnDate(date, *req.CheckIn)
	}
	if req.CheckOut != nil {
		entry.CheckOut = timeOnDate(date, *req.CheckOut)
	}

	created, err := a.AttendanceRepository.Upsert(ctx, entry)
	if err != nil {
		return attendance.ManualEntryResponse{}, fmt.Errorf("failed to upsert attendance entry: %w", err)
	}

	return attendance.ManualEntryResponse{
		Entry:   attendance.ToResponse(created),
		Warning: warning,
	}, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	entries, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	return toListResponse(entries, total), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = &employeeID
	entries, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	return toListResponse(entries, total), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.AttendanceRepository.Delete(ctx, id)
}

func toListResponse(entries []attendance.AttendanceEntry, total int64) attendance.ListAttendanceResponse {
	resp := attendance.ListAttendanceResponse{
		Entries: make([]attendance.AttendanceResponse, 0, len(entries)),
		Total:   total,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, attendance.ToResponse(e))
	}
	return resp
}

// timeOnDate combines a calendar date with a time-of-day string.
func timeOnDate(date time.Time, timeOfDay string) *time.Time {
	minutes, err := validator.MinutesOfDay(timeOfDay)
	if err != nil {
		return nil
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.UTC)
	return &t
}
