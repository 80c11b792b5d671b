package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// PortfolioHandler handles portfolio-level HTTP requests: summary, refresh,
// analytics, and valuation history.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	analyticsService *service.AnalyticsService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(
	portfolioService *service.PortfolioService,
	analyticsService *service.AnalyticsService,
	snapshotService *service.SnapshotService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		analyticsService: analyticsService,
		snapshotService:  snapshotService,
	}
}

// Summary handles GET requests for the current portfolio state.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with Summary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summarize()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Refresh handles POST requests to update prices for all open positions.
// Unresolvable tickers keep their previous price and are listed in the
// response's failedTickers; the refresh itself still succeeds.
//
// Endpoint: POST /api/portfolio/refresh
// Response: 200 OK with Summary (partial success reports failed tickers)
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.RefreshPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Analytics handles GET requests for risk/performance metrics. Too little
// history is a normal early-life state, answered with 200 and
// available=false rather than an error status.
//
// Endpoint: GET /api/portfolio/analytics
// Response: 200 OK with Metrics
func (h *PortfolioHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.analyticsService.GetMetrics(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientHistory) {
			response.RespondJSON(w, http.StatusOK, model.Metrics{Available: false})
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// Correlation handles GET requests for the holdings correlation matrix.
// Fewer than two holdings with overlapping price history is a normal state,
// answered with 200 and available=false.
//
// Endpoint: GET /api/portfolio/correlation
// Response: 200 OK with CorrelationMatrix
func (h *PortfolioHandler) Correlation(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.analyticsService.GetCorrelationMatrix(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, matrix)
}

// History handles GET requests for the snapshot series.
//
// Endpoint: GET /api/portfolio/history?days=30
// Response: 200 OK with ascending Snapshot array
// Error: 400 Bad Request when days is not a positive integer
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "days must be a positive integer", raw)
			return
		}
		days = parsed
	}

	history, err := h.snapshotService.GetHistory(days)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
