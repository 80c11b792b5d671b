package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrNoSuchPosition indicates that no open position exists for the ticker.
	ErrNoSuchPosition = errors.New("no open position for ticker")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUnknownTicker indicates the price source cannot resolve the symbol.
	ErrUnknownTicker = errors.New("unknown ticker symbol")

	// ErrAccountNotFound indicates the account row has not been initialized.
	ErrAccountNotFound = errors.New("account not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidInput indicates a non-positive quantity/price or a malformed
	// ticker symbol. Rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientQuantity indicates that a sell cannot be completed
	// because the position does not hold enough units.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidTicker indicates that a ticker symbol is syntactically invalid.
	ErrInvalidTicker = errors.New("invalid ticker symbol")
)

// Analytics precondition errors. A fresh account legitimately has no history
// yet, so callers must treat these as a normal early-life state, not a fault.
var (
	// ErrInsufficientHistory indicates fewer than two snapshots exist.
	ErrInsufficientHistory = errors.New("insufficient history for analytics")

	// ErrMisalignedSeries indicates portfolio and benchmark series differ in length.
	ErrMisalignedSeries = errors.New("portfolio and benchmark series are misaligned")
)

// Price source errors represent upstream market-data failures.
var (
	// ErrPriceSourceUnavailable indicates the price source could not be reached
	// or returned an unusable response. During refresh this is handled
	// per ticker (skip and continue), never fatal to the whole refresh.
	ErrPriceSourceUnavailable = errors.New("price source unavailable")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate an operation failed, but not due to missing
// entities or validation issues.
var (
	ErrFailedToRetrievePositions    = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveHistory      = errors.New("failed to retrieve portfolio history")
	ErrFailedToRetrieveAccount      = errors.New("failed to retrieve account")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToGetAnalytics         = errors.New("failed to compute analytics")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToResetAccount         = errors.New("failed to reset account")
	ErrFailedToRetrieveQuote        = errors.New("failed to retrieve quote")
)
