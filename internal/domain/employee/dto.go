package employee

import (
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`

	HireDate     *string `json:"hire_date,omitempty"`
	YearTracking string  `json:"year_tracking,omitempty"`

	VacationDaysPerYear    float64 `json:"vacation_days_per_year"`
	PermissionHoursPerYear float64 `json:"permission_hours_per_year"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.YearTracking != "" && !validator.IsInSlice(r.YearTracking, []string{string(YearTrackingFromYearStart), string(YearTrackingFromHireDate)}) {
		errs = append(errs, validator.ValidationError{Field: "year_tracking", Message: "must be from_year_start or from_hire_date"})
	}
	if r.VacationDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{Field: "vacation_days_per_year", Message: "must not be negative"})
	}
	if r.PermissionHoursPerYear < 0 {
		errs = append(errs, validator.ValidationError{Field: "permission_hours_per_year", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`

	HireDate     *string `json:"hire_date,omitempty"`
	YearTracking *string `json:"year_tracking,omitempty"`

	VacationDaysPerYear    *float64 `json:"vacation_days_per_year,omitempty"`
	PermissionHoursPerYear *float64 `json:"permission_hours_per_year,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.YearTracking != nil && !validator.IsInSlice(*r.YearTracking, []string{string(YearTrackingFromYearStart), string(YearTrackingFromHireDate)}) {
		errs = append(errs, validator.ValidationError{Field: "year_tracking", Message: "must be from_year_start or from_hire_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`

	HireDate     *string `json:"hire_date,omitempty"`
	YearTracking string  `json:"year_tracking"`

	VacationDaysPerYear    float64 `json:"vacation_days_per_year"`
	PermissionHoursPerYear float64 `json:"permission_hours_per_year"`
	CreatedAt              string  `json:"created_at"`
}

// ToResponse maps the entity into its API shape. The password hash
// never leaves the domain layer.
func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                     e.ID,
		FullName:               e.FullName,
		Email:                  e.Email,
		IsAdmin:                e.IsAdmin,
		YearTracking:           string(e.YearTracking),
		VacationDaysPerYear:    e.VacationDaysPerYear,
		PermissionHoursPerYear: e.PermissionHoursPerYear,
		CreatedAt:              e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.HireDate != nil {
		s := e.HireDate.Format("2006-01-02")
		resp.HireDate = &s
	}
	return resp
}

type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
}
