package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
)

type TripHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type tripHandlerImpl struct {
	tripService trip.TripService
}

func NewTripHandler(tripService trip.TripService) TripHandler {
	return &tripHandlerImpl{
		tripService: tripService,
	}
}

// Create implements TripHandler. Admin only.
func (h *tripHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req trip.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode trip request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.tripService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Business trip created", result)
}

// Approve implements TripHandler. Admin only.
func (h *tripHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.tripService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Business trip approved", result)
}

// Reject implements TripHandler. Admin only.
func (h *tripHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.tripService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Business trip rejected", result)
}

// List implements TripHandler. Admin only.
func (h *tripHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.tripService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete implements TripHandler. Admin only.
func (h *tripHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tripService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Business trip deleted", nil)
}
