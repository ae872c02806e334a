package leave

import (
	"context"
	"fmt"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/presenze-hr/presenze-backend-go/internal/service/balance"
	"github.com/presenze-hr/presenze-backend-go/internal/service/eligibility"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	eligibility *eligibility.Service
	balance     *balance.Calculator
}

func NewLeaveService(
	db *database.DB,
	leaveRequestRepository leave.LeaveRequestRepository,
	eligibilityService *eligibility.Service,
	balanceCalculator *balance.Calculator,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		eligibility:            eligibilityService,
		balance:                balanceCalculator,
	}
}

// CreateVacationRequest implements leave.LeaveService.
//
// Validation order is fixed: hire date first (it short-circuits the
// conflict engine), then the per-date range check, then balance.
func (l *LeaveServiceImpl) CreateVacationRequest(ctx context.Context, req leave.CreateVacationRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	dateFrom, err := validator.ParseDate(req.DateFrom)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	dateTo, err := validator.ParseDate(req.DateTo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	hireCheck, err := l.eligibility.ValidateAgainstHireDate(ctx, req.EmployeeID, dateFrom, &dateTo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !hireCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(hireCheck.Reasons...)
	}

	rangeCheck, err := l.eligibility.ValidateRangeForVacation(ctx, req.EmployeeID, dateFrom, dateTo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !rangeCheck.OK {
		reason := rangeCheck.Reason
		if rangeCheck.FailedDate != nil {
			reason = fmt.Sprintf("%s: %s", rangeCheck.FailedDate.Format("2006-01-02"), reason)
		}
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(reason)
	}

	balanceCheck, err := l.balance.CheckVacationDays(ctx, req.EmployeeID, dateFrom, dateTo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !balanceCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(balanceCheck.Message)
	}

	request := leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Type:       leave.TypeFerie,
		Status:     leave.LeaveRequestStatusPending,
		DateFrom:   &dateFrom,
		DateTo:     &dateTo,
		Note:       req.Note,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// CreatePermissionRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreatePermissionRequest(ctx context.Context, req leave.CreatePermissionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	day, err := validator.ParseDate(req.Day)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	hireCheck, err := l.eligibility.ValidateAgainstHireDate(ctx, req.EmployeeID, day, nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !hireCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(hireCheck.Reasons...)
	}

	dayCheck, err := l.eligibility.IsDateSelectableForPermission(ctx, req.EmployeeID, day)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !dayCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(dayCheck.Reasons...)
	}

	timeCheck, err := l.eligibility.ValidatePermissionTimes(ctx, req.EmployeeID, req.TimeFrom, req.TimeTo, leave.PermissionKind(req.Kind))
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !timeCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(timeCheck.Reasons...)
	}

	balanceCheck, err := l.balance.CheckPermissionHours(ctx, req.EmployeeID, day, req.TimeFrom, req.TimeTo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !balanceCheck.OK {
		return leave.LeaveRequestResponse{}, leave.NewValidationFailure(balanceCheck.Message)
	}

	request := leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Type:       leave.TypePermesso,
		Status:     leave.LeaveRequestStatusPending,
		Day:        &day,
		TimeFrom:   req.TimeFrom,
		TimeTo:     req.TimeTo,
		Note:       req.Note,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req, leave.LeaveRequestStatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req, leave.LeaveRequestStatusRejected)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, req leave.DecisionRequest, newStatus leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	if err := l.LeaveRequestRepository.UpdateStatus(ctx, req.ID, newStatus, req.AdminNote); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	request.Status = newStatus
	request.AdminNote = req.AdminNote
	return leave.ToResponse(request), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toListResponse(requests, total), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	filter.EmployeeID = &employeeID
	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toListResponse(requests, total), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string, employeeID string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrNotRequestOwner
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.ErrOnlyPendingCancellable
	}
	return l.LeaveRequestRepository.Delete(ctx, id)
}

func toListResponse(requests []leave.LeaveRequest, total int64) leave.ListLeaveRequestsResponse {
	resp := leave.ListLeaveRequestsResponse{
		Requests: make([]leave.LeaveRequestResponse, 0, len(requests)),
		Total:    total,
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, leave.ToResponse(r))
	}
	return resp
}
