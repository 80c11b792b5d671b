package handlers

import (
	"net/http"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// AccountHandler handles HTTP requests for the cash account.
type AccountHandler struct {
	portfolioService *service.PortfolioService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(portfolioService *service.PortfolioService) *AccountHandler {
	return &AccountHandler{
		portfolioService: portfolioService,
	}
}

// Get handles GET requests for the current account state.
//
// Endpoint: GET /api/account
// Response: 200 OK with Account
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.portfolioService.GetAccount()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// Reset handles POST requests to wipe all positions and restore the starting
// cash balance. The transaction journal and snapshot history are kept as an
// audit trail.
//
// Endpoint: POST /api/account/reset
// Response: 200 OK with the reset Account
func (h *AccountHandler) Reset(w http.ResponseWriter, r *http.Request) {
	account, err := h.portfolioService.ResetAccount()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToResetAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}
