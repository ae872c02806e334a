package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/presenze-hr/presenze-backend-go/internal/service/eligibility"
)

type StatusHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	VacationSelectable(w http.ResponseWriter, r *http.Request)
	PermissionSelectable(w http.ResponseWriter, r *http.Request)
}

type statusHandlerImpl struct {
	resolver    status.Resolver
	eligibility *eligibility.Service
	clock       clock.Clock
}

func NewStatusHandler(resolver status.Resolver, eligibilityService *eligibility.Service, clk clock.Clock) StatusHandler {
	return &statusHandlerImpl{
		resolver:    resolver,
		eligibility: eligibilityService,
		clock:       clk,
	}
}

// GetMine implements StatusHandler. The optional ?date= parameter
// defaults to today.
func (h *statusHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, employeeIDFromRequest(r))
}

// GetByEmployee implements StatusHandler. Admin view of any employee.
func (h *statusHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, chi.URLParam(r, "employeeID"))
}

func (h *statusHandlerImpl) resolve(w http.ResponseWriter, r *http.Request, employeeID string) {
	date := h.clock.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := validator.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		date = parsed
	}

	st, err := h.resolver.ResolveStatus(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, st)
}

// VacationSelectable implements StatusHandler. Calendar pickers call
// this per visible date.
func (h *statusHandlerImpl) VacationSelectable(w http.ResponseWriter, r *http.Request) {
	h.selectable(w, r, h.eligibility.IsDateSelectableForVacation)
}

// PermissionSelectable implements StatusHandler.
func (h *statusHandlerImpl) PermissionSelectable(w http.ResponseWriter, r *http.Request) {
	h.selectable(w, r, h.eligibility.IsDateSelectableForPermission)
}

type selectableResponse struct {
	Date       string   `json:"date"`
	Selectable bool     `json:"selectable"`
	Reasons    []string `json:"reasons,omitempty"`
}

func (h *statusHandlerImpl) selectable(w http.ResponseWriter, r *http.Request, check func(ctx context.Context, employeeID string, date time.Time) (eligibility.Result, error)) {
	raw := r.URL.Query().Get("date")
	date, err := validator.ParseDate(raw)
	if err != nil {
		response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	res, err := check(r.Context(), employeeIDFromRequest(r), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, selectableResponse{
		Date:       date.Format("2006-01-02"),
		Selectable: res.OK,
		Reasons:    res.Reasons,
	})
}
