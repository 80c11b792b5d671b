package handlers

import (
	"errors"
	"net/http"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/response"
	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/validation"
)

// respondEngineError maps engine-level errors onto HTTP status codes:
// validation and sell-side precondition failures are 400, missing entities
// 404, an unreachable price source 502, everything else 500.
func respondEngineError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrInvalidTicker),
		errors.Is(err, apperrors.ErrInsufficientQuantity),
		errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())

	case errors.Is(err, apperrors.ErrNoSuchPosition),
		errors.Is(err, apperrors.ErrUnknownTicker),
		errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, apperrors.ErrPriceSourceUnavailable):
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrPriceSourceUnavailable.Error(), err.Error())

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
