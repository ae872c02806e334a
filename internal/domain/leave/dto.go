package leave

import (
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type CreateVacationRequest struct {
	EmployeeID string  `json:"-"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Note       *string `json:"note,omitempty"`
}

func (r CreateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must not precede date_from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatePermissionRequest struct {
	EmployeeID string  `json:"-"`
	Day        string  `json:"day"`
	TimeFrom   *string `json:"time_from,omitempty"`
	TimeTo     *string `json:"time_to,omitempty"`
	Kind       string  `json:"kind,omitempty"` // start_of_day | mid_day, required with a time window
	Note       *string `json:"note,omitempty"`
}

func (r CreatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if (r.TimeFrom == nil) != (r.TimeTo == nil) {
		errs = append(errs, validator.ValidationError{Field: "time_from", Message: "time_from and time_to must be provided together"})
	}
	if r.TimeFrom != nil && !validator.IsValidTimeOfDay(*r.TimeFrom) {
		errs = append(errs, validator.ValidationError{Field: "time_from", Message: "must be a valid time of day (HH:MM)"})
	}
	if r.TimeTo != nil && !validator.IsValidTimeOfDay(*r.TimeTo) {
		errs = append(errs, validator.ValidationError{Field: "time_to", Message: "must be a valid time of day (HH:MM)"})
	}
	if r.TimeFrom != nil && r.Kind != string(PermissionStartOfDay) && r.Kind != string(PermissionMidDay) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be start_of_day or mid_day for hourly permissions"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	ID        string  `json:"-"`
	AdminNote *string `json:"admin_note,omitempty"`
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	DateFrom     *string `json:"date_from,omitempty"`
	DateTo       *string `json:"date_to,omitempty"`
	Day          *string `json:"day,omitempty"`
	TimeFrom     *string `json:"time_from,omitempty"`
	TimeTo       *string `json:"time_to,omitempty"`
	Note         *string `json:"note,omitempty"`
	AdminNote    *string `json:"admin_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ToResponse maps the entity into its API shape.
func ToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         string(r.Type),
		Status:       string(r.Status),
		TimeFrom:     r.TimeFrom,
		TimeTo:       r.TimeTo,
		Note:         r.Note,
		AdminNote:    r.AdminNote,
		CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.DateFrom != nil {
		s := r.DateFrom.Format("2006-01-02")
		resp.DateFrom = &s
	}
	if r.DateTo != nil {
		s := r.DateTo.Format("2006-01-02")
		resp.DateTo = &s
	}
	if r.Day != nil {
		s := r.Day.Format("2006-01-02")
		resp.Day = &s
	}
	return resp
}

type ListLeaveRequestsResponse struct {
	Requests []LeaveRequestResponse `json:"requests"`
	Total    int64                  `json:"total"`
}
