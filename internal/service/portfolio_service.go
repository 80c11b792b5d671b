package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
	"github.com/Mayank-31k/portfolio-tracker/internal/validation"
)

// quantityEpsilon is the tolerance below which a position quantity counts as
// zero and the position is removed.
const quantityEpsilon = 1e-9

// maxConcurrentQuoteFetches bounds the parallel quote requests during a
// price refresh.
const maxConcurrentQuoteFetches = 4

// PortfolioService is the portfolio engine: it owns the position set and the
// cash account, and every mutation (buy, sell, reset, refresh apply) runs
// under its write lock. Two concurrent "sell entire position" calls on the
// same ticker therefore cannot both succeed. Quote fetches happen outside
// the lock so a slow price source never stalls reads.
//
// Cash has no margin check: buys may drive the balance negative. Realized
// P&L from sells is not tracked separately; the average cost is left
// untouched on sells, which is a known gap of the aggregated-position model.
type PortfolioService struct {
	mu sync.RWMutex

	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
	quotes          QuoteSource
}

// NewPortfolioService creates a new PortfolioService with the provided
// repository and price source dependencies.
func NewPortfolioService(
	positionRepo *repository.PositionRepository,
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
	quotes QuoteSource,
) *PortfolioService {
	return &PortfolioService{
		positionRepo:    positionRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		quotes:          quotes,
	}
}

// Buy records a simulated purchase. The ticker is resolved against the price
// source before any state changes, so a failed lookup leaves the ledger
// untouched. An existing position is merged via the weighted-average cost
// method; cash is decremented by quantity*price and may go negative.
func (s *PortfolioService) Buy(ctx context.Context, ticker string, quantity, price float64) (model.Summary, error) {
	ticker = normalizeTicker(ticker)
	if err := validation.ValidateBuy(ticker, quantity, price); err != nil {
		return model.Summary{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	// Resolve the ticker outside the lock; the quote also seeds position
	// metadata and the last observed price.
	quote, err := s.quotes.Quote(ctx, ticker)
	if err != nil {
		return model.Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	position, err := s.positionRepo.GetPositionOnTicker(ticker)
	if err != nil && !errors.Is(err, apperrors.ErrNoSuchPosition) {
		return model.Summary{}, err
	}

	if errors.Is(err, apperrors.ErrNoSuchPosition) {
		position = model.Position{
			Ticker:   ticker,
			Quantity: quantity,
			AvgCost:  price,
		}
	} else {
		newQuantity := position.Quantity + quantity
		position.AvgCost = (position.Quantity*position.AvgCost + quantity*price) / newQuantity
		position.Quantity = newQuantity
	}

	lastPrice := quote.Price
	position.LastPrice = &lastPrice
	position.Name = quote.Name
	position.Currency = quote.Currency
	position.Exchange = quote.Exchange

	if err := s.positionRepo.SavePosition(position); err != nil {
		return model.Summary{}, err
	}

	if err := s.appendTransaction(ticker, model.TransactionBuy, quantity, price); err != nil {
		return model.Summary{}, err
	}

	if err := s.adjustCash(-quantity * price); err != nil {
		return model.Summary{}, err
	}

	return s.summarizeLocked()
}

// Sell records a simulated sale. A nil quantity sells the entire position.
// Selling more than held fails with ErrInsufficientQuantity and changes
// nothing; there is no short selling and no clamping. The transaction is
// priced at the position's last known price (average cost when no quote was
// ever observed), not at a caller-supplied price.
func (s *PortfolioService) Sell(_ context.Context, ticker string, quantity *float64) (model.Summary, error) {
	ticker = normalizeTicker(ticker)
	if err := validation.ValidateSell(ticker, quantity); err != nil {
		return model.Summary{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	position, err := s.positionRepo.GetPositionOnTicker(ticker)
	if err != nil {
		return model.Summary{}, err
	}

	sellQuantity := position.Quantity
	if quantity != nil {
		sellQuantity = *quantity
	}
	if sellQuantity > position.Quantity+quantityEpsilon {
		return model.Summary{}, fmt.Errorf("%w: have %g, requested %g",
			apperrors.ErrInsufficientQuantity, position.Quantity, sellQuantity)
	}

	price := position.AvgCost
	if position.LastPrice != nil {
		price = *position.LastPrice
	}

	remaining := position.Quantity - sellQuantity
	if remaining < quantityEpsilon {
		if err := s.positionRepo.DeletePosition(ticker); err != nil {
			return model.Summary{}, err
		}
	} else {
		position.Quantity = remaining
		// Average cost is intentionally unchanged on a partial sell.
		if err := s.positionRepo.SavePosition(position); err != nil {
			return model.Summary{}, err
		}
	}

	if err := s.appendTransaction(ticker, model.TransactionSell, sellQuantity, price); err != nil {
		return model.Summary{}, err
	}

	if err := s.adjustCash(sellQuantity * price); err != nil {
		return model.Summary{}, err
	}

	return s.summarizeLocked()
}

// RefreshPrices fetches a fresh quote for every open position and updates
// the last observed prices. Fetches run concurrently outside the lock; a
// ticker that cannot be resolved keeps its previous price and is reported in
// the summary's FailedTickers instead of aborting the refresh.
func (s *PortfolioService) RefreshPrices(ctx context.Context) (model.Summary, error) {
	s.mu.RLock()
	positions, err := s.positionRepo.GetPositions()
	s.mu.RUnlock()
	if err != nil {
		return model.Summary{}, err
	}

	type fetched struct {
		ticker string
		price  float64
		err    error
	}

	results := make([]fetched, len(positions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuoteFetches)

	for i, p := range positions {
		i, p := i, p
		g.Go(func() error {
			quote, err := s.quotes.Quote(gctx, p.Ticker)
			if err != nil {
				results[i] = fetched{ticker: p.Ticker, err: err}
				return nil // skip and continue; per-ticker failures are not fatal
			}
			results[i] = fetched{ticker: p.Ticker, price: quote.Price}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var failed []string
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.ticker)
			continue
		}
		if err := s.positionRepo.UpdateLastPrice(r.ticker, r.price); err != nil {
			// The position may have been sold while the quote was in
			// flight; that is not a refresh failure.
			if errors.Is(err, apperrors.ErrNoSuchPosition) {
				continue
			}
			return model.Summary{}, err
		}
	}

	summary, err := s.summarizeLocked()
	if err != nil {
		return model.Summary{}, err
	}
	summary.FailedTickers = failed
	return summary, nil
}

// Summarize computes the current portfolio summary from stored state only.
// No quotes are fetched.
func (s *PortfolioService) Summarize() (model.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarizeLocked()
}

// summarizeLocked builds the summary. Callers must hold at least the read lock.
func (s *PortfolioService) summarizeLocked() (model.Summary, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return model.Summary{}, err
	}
	account, err := s.accountRepo.LoadAccount()
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.Summary{
		Positions:       make([]model.PositionView, 0, len(positions)),
		AssetAllocation: map[string]float64{},
		NumPositions:    len(positions),
		CashBalance:     round2(account.CashBalance),
	}

	for _, p := range positions {
		summary.TotalValue += p.CurrentValue()
		summary.TotalCostBasis += p.CostBasis()

		summary.Positions = append(summary.Positions, model.PositionView{
			Ticker:               p.Ticker,
			Quantity:             p.Quantity,
			AvgCost:              p.AvgCost,
			LastPrice:            p.LastPrice,
			Name:                 p.Name,
			Currency:             p.Currency,
			CostBasis:            round2(p.CostBasis()),
			CurrentValue:         round2(p.CurrentValue()),
			UnrealizedPnL:        round2(p.UnrealizedPnL()),
			UnrealizedPnLPercent: round2(p.UnrealizedPnLPercent()),
		})
	}

	summary.TotalPnL = summary.TotalValue - summary.TotalCostBasis
	if summary.TotalCostBasis != 0 {
		summary.TotalPnLPercent = round2(summary.TotalPnL / summary.TotalCostBasis * 100)
	}
	if summary.TotalValue != 0 {
		for _, p := range positions {
			summary.AssetAllocation[p.Ticker] = round2(p.CurrentValue() / summary.TotalValue * 100)
		}
	}

	summary.AccountPnL = round2(summary.TotalValue + account.CashBalance - account.InitialBalance)
	summary.TotalValue = round2(summary.TotalValue)
	summary.TotalCostBasis = round2(summary.TotalCostBasis)
	summary.TotalPnL = round2(summary.TotalPnL)

	return summary, nil
}

// ResetAccount removes every open position and restores cash to the initial
// balance. Transactions and snapshots are retained: they are the audit trail
// of what happened, not part of current state.
func (s *PortfolioService) ResetAccount() (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.positionRepo.DeleteAllPositions(); err != nil {
		return model.Account{}, err
	}

	account, err := s.accountRepo.LoadAccount()
	if err != nil {
		return model.Account{}, err
	}
	account.CashBalance = account.InitialBalance
	if err := s.accountRepo.SaveAccount(account); err != nil {
		return model.Account{}, err
	}

	return s.accountRepo.LoadAccount()
}

// GetAccount returns the current account state.
func (s *PortfolioService) GetAccount() (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountRepo.LoadAccount()
}

// GetTransactions returns transactions, most recent first. A limit <= 0
// returns the full ledger.
func (s *PortfolioService) GetTransactions(limit int) ([]model.Transaction, error) {
	return s.transactionRepo.ListTransactions(limit)
}

// GetQuote resolves a ticker against the price source without touching the
// ledger. Exposed for the stock-info endpoint.
func (s *PortfolioService) GetQuote(ctx context.Context, ticker string) (model.Quote, error) {
	ticker = normalizeTicker(ticker)
	if err := validation.ValidateTicker(ticker); err != nil {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	return s.quotes.Quote(ctx, ticker)
}

func (s *PortfolioService) appendTransaction(ticker, txType string, quantity, price float64) error {
	return s.transactionRepo.AppendTransaction(model.Transaction{
		ID:        uuid.New().String(),
		Ticker:    ticker,
		Type:      txType,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	})
}

// adjustCash applies a signed delta to the cash balance.
func (s *PortfolioService) adjustCash(delta float64) error {
	account, err := s.accountRepo.LoadAccount()
	if err != nil {
		return err
	}
	account.CashBalance += delta
	return s.accountRepo.SaveAccount(account)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
