package attendance

import (
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`  // "HH:MM"
	CheckOut   *string `json:"check_out,omitempty"` // "HH:MM"
	Notes      *string `json:"notes,omitempty"`
	// Force acknowledges a non-blocking conflict warning.
	Force bool `json:"force,omitempty"`
}

func (r ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.CheckIn != nil && !validator.IsValidTimeOfDay(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be a valid time of day (HH:MM)"})
	}
	if r.CheckOut != nil && !validator.IsValidTimeOfDay(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be a valid time of day (HH:MM)"})
	}
	if r.CheckIn != nil && r.CheckOut != nil {
		in, _ := validator.MinutesOfDay(*r.CheckIn)
		out, _ := validator.MinutesOfDay(*r.CheckOut)
		if out <= in {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be after check_in"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	IsManual     bool    `json:"is_manual"`
	IsTrip       bool    `json:"is_business_trip"`
	IsSickLeave  bool    `json:"is_sick_leave"`
	Notes        *string `json:"notes,omitempty"`
}

type ManualEntryResponse struct {
	Entry AttendanceResponse `json:"entry"`
	// Warning is set when the entry was saved on a date carrying a
	// pending request or a permission; admins are warned, not blocked.
	Warning *string `json:"warning,omitempty"`
}

type ListAttendanceResponse struct {
	Entries []AttendanceResponse `json:"entries"`
	Total   int64                `json:"total"`
}

// ToResponse maps the entity into its API shape.
func ToResponse(e AttendanceEntry) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Date:         e.Date.Format("2006-01-02"),
		IsManual:     e.IsManual,
		IsTrip:       e.IsBusinessTrip,
		IsSickLeave:  e.IsSickLeave,
		Notes:        e.Notes,
	}
	if e.CheckIn != nil {
		s := e.CheckIn.Format("15:04:05")
		resp.CheckIn = &s
	}
	if e.CheckOut != nil {
		s := e.CheckOut.Format("15:04:05")
		resp.CheckOut = &s
	}
	return resp
}
