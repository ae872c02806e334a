package schedule

import (
	"context"
	"fmt"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
	employee.EmployeeRepository
}

func NewScheduleService(
	workScheduleRepository schedule.WorkScheduleRepository,
	holidayRepository schedule.HolidayRepository,
	employeeRepository employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		WorkScheduleRepository: workScheduleRepository,
		HolidayRepository:      holidayRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// GetEffective implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetEffective(ctx context.Context, employeeID string) (schedule.ScheduleResponse, error) {
	override, err := s.WorkScheduleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	if override != nil {
		return schedule.ToResponse(*override), nil
	}
	company, err := s.WorkScheduleRepository.GetCompanyDefault(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	if company != nil {
		return schedule.ToResponse(*company), nil
	}
	return schedule.ToResponse(schedule.Default()), nil
}

// UpsertCompanyDefault implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpsertCompanyDefault(ctx context.Context, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ws := fromRequest(req)
	ws.EmployeeID = nil

	saved, err := s.WorkScheduleRepository.Upsert(ctx, ws)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to upsert company schedule: %w", err)
	}
	return schedule.ToResponse(saved), nil
}

// UpsertEmployeeOverride implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpsertEmployeeOverride(ctx context.Context, employeeID string, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ws := fromRequest(req)
	ws.EmployeeID = &employeeID

	saved, err := s.WorkScheduleRepository.Upsert(ctx, ws)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to upsert employee schedule: %w", err)
	}
	return schedule.ToResponse(saved), nil
}

// DeleteEmployeeOverride implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteEmployeeOverride(ctx context.Context, employeeID string) error {
	return s.WorkScheduleRepository.DeleteEmployeeOverride(ctx, employeeID)
}

// CreateHoliday implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateHoliday(ctx context.Context, req schedule.CreateHolidayRequest) (schedule.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.HolidayResponse{}, err
	}

	date, err := validator.ParseDate(req.Date)
	if err != nil {
		return schedule.HolidayResponse{}, err
	}

	created, err := s.HolidayRepository.Create(ctx, schedule.CompanyHoliday{
		Name:      req.Name,
		Date:      date,
		Recurring: req.Recurring,
	})
	if err != nil {
		return schedule.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return schedule.HolidayToResponse(created), nil
}

// ListHolidays implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListHolidays(ctx context.Context) ([]schedule.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	resp := make([]schedule.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, schedule.HolidayToResponse(h))
	}
	return resp, nil
}

// DeleteHoliday implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}

func fromRequest(req schedule.UpsertScheduleRequest) schedule.WorkSchedule {
	return schedule.WorkSchedule{
		StartTime:        normalizeTime(req.StartTime),
		EndTime:          normalizeTime(req.EndTime),
		Monday:           req.Monday,
		Tuesday:          req.Tuesday,
		Wednesday:        req.Wednesday,
		Thursday:         req.Thursday,
		Friday:           req.Friday,
		Saturday:         req.Saturday,
		Sunday:           req.Sunday,
		ToleranceMinutes: req.ToleranceMinutes,
	}
}

// normalizeTime pads "HH:MM" input to the stored "HH:MM:SS" form.
func normalizeTime(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}
