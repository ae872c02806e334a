package trip

import (
	"context"
	"fmt"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type TripServiceImpl struct {
	trip.BusinessTripRepository
	attendance.AttendanceRepository
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
	employee.EmployeeRepository
}

func NewTripService(
	businessTripRepository trip.BusinessTripRepository,
	attendanceRepository attendance.AttendanceRepository,
	workScheduleRepository schedule.WorkScheduleRepository,
	holidayRepository schedule.HolidayRepository,
	employeeRepository employee.EmployeeRepository,
) trip.TripService {
	return &TripServiceImpl{
		BusinessTripRepository: businessTripRepository,
		AttendanceRepository:   attendanceRepository,
		WorkScheduleRepository: workScheduleRepository,
		HolidayRepository:      holidayRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// Create implements trip.TripService.
func (t *TripServiceImpl) Create(ctx context.Context, req trip.CreateTripRequest) (trip.TripResponse, error) {
	if err := req.Validate(); err != nil {
		return trip.TripResponse{}, err
	}

	if _, err := t.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return trip.TripResponse{}, err
	}

	startDate, err := validator.ParseDate(req.StartDate)
	if err != nil {
		return trip.TripResponse{}, err
	}
	endDate, err := validator.ParseDate(req.EndDate)
	if err != nil {
		return trip.TripResponse{}, err
	}

	created, err := t.BusinessTripRepository.Create(ctx, trip.BusinessTrip{
		EmployeeID:  req.EmployeeID,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      trip.TripStatusPending,
		Notes:       req.Notes,
	})
	if err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to create business trip: %w", err)
	}

	return trip.ToResponse(created), nil
}

// Approve implements trip.TripService. Approval materializes an
// attendance entry for every working day of the trip, flagged so the
// status resolver skips them.
func (t *TripServiceImpl) Approve(ctx context.Context, id string) (trip.TripResponse, error) {
	bt, err := t.BusinessTripRepository.GetByID(ctx, id)
	if err != nil {
		return trip.TripResponse{}, err
	}
	if bt.Status != trip.TripStatusPending {
		return trip.TripResponse{}, trip.ErrTripAlreadyProcessed
	}

	if err := t.BusinessTripRepository.UpdateStatus(ctx, id, trip.TripStatusApproved); err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to update business trip status: %w", err)
	}

	if err := t.materializeAttendance(ctx, bt); err != nil {
		return trip.TripResponse{}, err
	}

	bt.Status = trip.TripStatusApproved
	return trip.ToResponse(bt), nil
}

// Reject implements trip.TripService.
func (t *TripServiceImpl) Reject(ctx context.Context, id string) (trip.TripResponse, error) {
	bt, err := t.BusinessTripRepository.GetByID(ctx, id)
	if err != nil {
		return trip.TripResponse{}, err
	}
	if bt.Status != trip.TripStatusPending {
		return trip.TripResponse{}, trip.ErrTripAlreadyProcessed
	}

	if err := t.BusinessTripRepository.UpdateStatus(ctx, id, trip.TripStatusRejected); err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to update business trip status: %w", err)
	}

	bt.Status = trip.TripStatusRejected
	return trip.ToResponse(bt), nil
}

// List implements trip.TripService.
func (t *TripServiceImpl) List(ctx context.Context) ([]trip.TripResponse, error) {
	trips, err := t.BusinessTripRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list business trips: %w", err)
	}
	resp := make([]trip.TripResponse, 0, len(trips))
	for _, bt := range trips {
		resp = append(resp, trip.ToResponse(bt))
	}
	return resp, nil
}

// Delete implements trip.TripService.
func (t *TripServiceImpl) Delete(ctx context.Context, id string) error {
	return t.BusinessTripRepository.Delete(ctx, id)
}

func (t *TripServiceImpl) materializeAttendance(ctx context.Context, bt trip.BusinessTrip) error {
	sched, err := t.effectiveSchedule(ctx, bt.EmployeeID)
	if err != nil {
		return err
	}

	start := validator.DateOnly(bt.StartDate)
	end := validator.DateOnly(bt.EndDate)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !sched.WorksOn(day.Weekday()) {
			continue
		}
		holiday, err := t.HolidayRepository.GetByDate(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to look up holiday: %w", err)
		}
		if holiday != nil {
			continue
		}
		existing, err := t.AttendanceRepository.GetByEmployeeAndDate(ctx, bt.EmployeeID, day)
		if err != nil {
			return fmt.Errorf("failed to get attendance entry: %w", err)
		}
		if existing != nil {
			continue
		}
		if _, err := t.AttendanceRepository.Upsert(ctx, attendance.AttendanceEntry{
			EmployeeID:     bt.EmployeeID,
			Date:           day,
			IsBusinessTrip: true,
			Notes:          &bt.Destination,
		}); err != nil {
			return fmt.Errorf("failed to create trip attendance entry: %w", err)
		}
	}
	return nil
}

func (t *TripServiceImpl) effectiveSchedule(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	override, err := t.WorkScheduleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	if override != nil {
		return *override, nil
	}
	company, err := t.WorkScheduleRepository.GetCompanyDefault(ctx)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	if company != nil {
		return *company, nil
	}
	return schedule.Default(), nil
}
