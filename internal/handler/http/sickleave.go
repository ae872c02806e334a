package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
)

type SickLeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type sickLeaveHandlerImpl struct {
	sickLeaveService sickleave.SickLeaveService
}

func NewSickLeaveHandler(sickLeaveService sickleave.SickLeaveService) SickLeaveHandler {
	return &sickLeaveHandlerImpl{
		sickLeaveService: sickLeaveService,
	}
}

// Create implements SickLeaveHandler. Admin only.
func (h *sickLeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req sickleave.CreateSickLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode sick leave request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sickLeaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Sick leave recorded", result)
}

// List implements SickLeaveHandler. Admin only.
func (h *sickLeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.sickLeaveService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMine implements SickLeaveHandler.
func (h *sickLeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.sickLeaveService.ListByEmployee(r.Context(), employeeIDFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete implements SickLeaveHandler. Admin only.
func (h *sickLeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sickLeaveService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sick leave deleted", nil)
}
