package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	UpsertCompanyDefault(w http.ResponseWriter, r *http.Request)
	UpsertEmployeeOverride(w http.ResponseWriter, r *http.Request)
	DeleteEmployeeOverride(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// GetMine implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetEffective(r.Context(), employeeIDFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetByEmployee implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetEffective(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpsertCompanyDefault implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) UpsertCompanyDefault(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode schedule request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.UpsertCompanyDefault(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company schedule saved", result)
}

// UpsertEmployeeOverride implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) UpsertEmployeeOverride(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode schedule request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.UpsertEmployeeOverride(r.Context(), chi.URLParam(r, "employeeID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee schedule saved", result)
}

// DeleteEmployeeOverride implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) DeleteEmployeeOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteEmployeeOverride(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee schedule removed", nil)
}

// CreateHoliday implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode holiday request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created", result)
}

// ListHolidays implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// DeleteHoliday implements ScheduleHandler. Admin only.
func (h *scheduleHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
