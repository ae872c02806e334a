package response

import (
	"errors"
	"net/http"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/auth"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level validation errors
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Business-rule failures from eligibility and balance checks
	var ruleFailure leave.ValidationFailure
	if errors.As(err, &ruleFailure) {
		BusinessRuleViolation(w, ruleFailure.Reasons)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrMalformedPermission):
		Conflict(w, "Permission has an incomplete time window")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrOnlyPendingCancellable):
		Conflict(w, "Only pending requests can be cancelled")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance entry not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open session to check out from")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrDateBlocked):
		Conflict(w, "Date is blocked by an absence")
	case errors.Is(err, attendance.ErrPermissionActive):
		Conflict(w, "An hourly permission is currently active")
	case errors.Is(err, attendance.ErrSickLeaveConflict):
		Conflict(w, "Date conflicts with a sick leave")
	case errors.Is(err, attendance.ErrVacationConflict):
		Conflict(w, "Date conflicts with an approved vacation")
	case errors.Is(err, attendance.ErrBusinessTripConflict):
		Conflict(w, "Date conflicts with an approved business trip")

	// Sick leave domain errors
	case errors.Is(err, sickleave.ErrSickLeaveNotFound):
		NotFound(w, "Sick leave not found")

	// Business trip domain errors
	case errors.Is(err, trip.ErrTripNotFound):
		NotFound(w, "Business trip not found")
	case errors.Is(err, trip.ErrTripAlreadyProcessed):
		Conflict(w, "Business trip already processed")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrHolidayNotFound):
		NotFound(w, "Company holiday not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
