package schedule

import (
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type UpsertScheduleRequest struct {
	// EmployeeID is empty for the company-wide schedule.
	EmployeeID *string `json:"employee_id,omitempty"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	ToleranceMinutes int `json:"tolerance_minutes"`
}

func (r UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid time of day (HH:MM)"})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid time of day (HH:MM)"})
	}
	if len(errs) == 0 {
		start, _ := validator.MinutesOfDay(r.StartTime)
		end, _ := validator.MinutesOfDay(r.EndTime)
		if end <= start {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be after start_time"})
		}
	}
	if r.ToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "tolerance_minutes", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHolidayRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	ToleranceMinutes int `json:"tolerance_minutes"`
}

// ToResponse maps the entity into its API shape.
func ToResponse(s WorkSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:               s.ID,
		EmployeeID:       s.EmployeeID,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Monday:           s.Monday,
		Tuesday:          s.Tuesday,
		Wednesday:        s.Wednesday,
		Thursday:         s.Thursday,
		Friday:           s.Friday,
		Saturday:         s.Saturday,
		Sunday:           s.Sunday,
		ToleranceMinutes: s.ToleranceMinutes,
	}
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

// HolidayToResponse maps the entity into its API shape.
func HolidayToResponse(h CompanyHoliday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		Date:      h.Date.Format("2006-01-02"),
		Recurring: h.Recurring,
	}
}
