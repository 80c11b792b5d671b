package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// StockHandler handles HTTP requests for ad-hoc market quotes.
type StockHandler struct {
	portfolioService *service.PortfolioService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(portfolioService *service.PortfolioService) *StockHandler {
	return &StockHandler{
		portfolioService: portfolioService,
	}
}

// Quote handles GET requests for a live quote on any ticker, held or not.
//
// Endpoint: GET /api/stock/{ticker}
// Response: 200 OK with Quote
// Error: 400 Bad Request on a malformed ticker
// Error: 404 Not Found when the source cannot resolve the symbol
// Error: 502 Bad Gateway when the price source is unreachable
func (h *StockHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	quote, err := h.portfolioService.GetQuote(r.Context(), ticker)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}
