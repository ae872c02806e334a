package leave

import (
	"errors"
	"strings"
)

// Leave domain errors
var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed  = errors.New("leave request has already been approved or rejected")
	ErrInvalidDateRange       = errors.New("date_to must not precede date_from")
	ErrMalformedPermission    = errors.New("permission has only one of time_from/time_to")
	ErrNotRequestOwner        = errors.New("leave request belongs to another employee")
	ErrOnlyPendingCancellable = errors.New("only pending requests can be cancelled")
)

// ValidationFailure carries user-displayable business-rule reasons.
// These are expected outcomes of normal use, not infrastructure errors.
type ValidationFailure struct {
	Reasons []string
}

func (v ValidationFailure) Error() string {
	return strings.Join(v.Reasons, "; ")
}

// NewValidationFailure wraps one or more reasons into a typed failure.
func NewValidationFailure(reasons ...string) ValidationFailure {
	return ValidationFailure{Reasons: reasons}
}
