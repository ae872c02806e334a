package sickleave

import (
	"context"
	"fmt"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type SickLeaveServiceImpl struct {
	sickleave.SickLeaveRepository
	employee.EmployeeRepository
}

func NewSickLeaveService(
	sickLeaveRepository sickleave.SickLeaveRepository,
	employeeRepository employee.EmployeeRepository,
) sickleave.SickLeaveService {
	return &SickLeaveServiceImpl{
		SickLeaveRepository: sickLeaveRepository,
		EmployeeRepository:  employeeRepository,
	}
}

// Create implements sickleave.SickLeaveService. Sick leave always wins
// over other absences, so no conflict check runs here.
func (s *SickLeaveServiceImpl) Create(ctx context.Context, req sickleave.CreateSickLeaveRequest) (sickleave.SickLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return sickleave.SickLeaveResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return sickleave.SickLeaveResponse{}, err
	}

	startDate, err := validator.ParseDate(req.StartDate)
	if err != nil {
		return sickleave.SickLeaveResponse{}, err
	}
	endDate, err := validator.ParseDate(req.EndDate)
	if err != nil {
		return sickleave.SickLeaveResponse{}, err
	}

	created, err := s.SickLeaveRepository.Create(ctx, sickleave.SickLeave{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reference:  req.Reference,
		Notes:      req.Notes,
	})
	if err != nil {
		return sickleave.SickLeaveResponse{}, fmt.Errorf("failed to create sick leave: %w", err)
	}

	return sickleave.ToResponse(created), nil
}

// List implements sickleave.SickLeaveService.
func (s *SickLeaveServiceImpl) List(ctx context.Context) ([]sickleave.SickLeaveResponse, error) {
	leaves, err := s.SickLeaveRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	return toResponses(leaves), nil
}

// ListByEmployee implements sickleave.SickLeaveService.
func (s *SickLeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]sickleave.SickLeaveResponse, error) {
	leaves, err := s.SickLeaveRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	return toResponses(leaves), nil
}

// Delete implements sickleave.SickLeaveService.
func (s *SickLeaveServiceImpl) Delete(ctx context.Context, id string) error {
	return s.SickLeaveRepository.Delete(ctx, id)
}

func toResponses(leaves []sickleave.SickLeave) []sickleave.SickLeaveResponse {
	resp := make([]sickleave.SickLeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		resp = append(resp, sickleave.ToResponse(l))
	}
	return resp
}
