package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// TransactionHandler handles HTTP requests for the transaction journal.
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{
		portfolioService: portfolioService,
	}
}

// List handles GET requests for the transaction journal, newest first.
//
// Endpoint: GET /api/transactions?limit=50
// Response: 200 OK with Transaction array
// Error: 400 Bad Request when limit is not a positive integer
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", raw)
			return
		}
		limit = parsed
	}

	transactions, err := h.portfolioService.GetTransactions(limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
