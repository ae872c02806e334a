package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/response"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/presenze-hr/presenze-backend-go/internal/service/balance"
)

type BalanceHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
}

type balanceHandlerImpl struct {
	calculator *balance.Calculator
	clock      clock.Clock
}

func NewBalanceHandler(calculator *balance.Calculator, clk clock.Clock) BalanceHandler {
	return &balanceHandlerImpl{
		calculator: calculator,
		clock:      clk,
	}
}

// GetMine implements BalanceHandler. The optional ?date= parameter
// selects the tracking period; it defaults to today.
func (h *balanceHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	h.summarize(w, r, employeeIDFromRequest(r))
}

// GetByEmployee implements BalanceHandler. Admin only.
func (h *balanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	h.summarize(w, r, chi.URLParam(r, "employeeID"))
}

func (h *balanceHandlerImpl) summarize(w http.ResponseWriter, r *http.Request, employeeID string) {
	ref := h.clock.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := validator.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		ref = parsed
	}

	result, err := h.calculator.Summarize(r.Context(), employeeID, ref)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
