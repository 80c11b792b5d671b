package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/request"
	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// PositionHandler handles HTTP requests for buying and selling positions.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolio service.
type PositionHandler struct {
	portfolioService *service.PortfolioService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(portfolioService *service.PortfolioService) *PositionHandler {
	return &PositionHandler{
		portfolioService: portfolioService,
	}
}

// Buy handles POST requests to open or add to a position.
//
// Endpoint: POST /api/positions
// Body: {"ticker": "AAPL", "quantity": 10, "price": 150.0}
// Response: 200 OK with the refreshed Summary
// Error: 400 Bad Request on invalid input
// Error: 404 Not Found when the ticker cannot be resolved
// Error: 502 Bad Gateway when the price source is unreachable
func (h *PositionHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req request.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	summary, err := h.portfolioService.Buy(r.Context(), req.Ticker, req.Quantity, req.Price)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Sell handles DELETE requests to reduce or close a position. The body is
// optional; omitting it (or the quantity field) sells the entire position.
//
// Endpoint: DELETE /api/positions/{ticker}
// Body: {"quantity": 5} (optional)
// Response: 200 OK with the refreshed Summary
// Error: 400 Bad Request on invalid quantity or insufficient holdings
// Error: 404 Not Found when no open position exists for the ticker
func (h *PositionHandler) Sell(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	var req request.SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	summary, err := h.portfolioService.Sell(r.Context(), ticker, req.Quantity)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
