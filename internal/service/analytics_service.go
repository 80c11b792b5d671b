package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mayank-31k/portfolio-tracker/internal/analytics"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
)

// analyticsWindowDays is how far back the metrics look into the snapshot series.
const analyticsWindowDays = 90

// AnalyticsService derives risk/performance statistics from the snapshot
// series, optionally relative to a benchmark symbol fetched from the price
// source, plus the pairwise correlation of the open holdings. The
// statistical core lives in the analytics package and is pure; this service
// only assembles its inputs.
type AnalyticsService struct {
	snapshotRepo    *repository.SnapshotRepository
	positionRepo    *repository.PositionRepository
	quotes          QuoteSource
	benchmarkSymbol string
	riskFreeDaily   float64
}

// NewAnalyticsService creates a new AnalyticsService. riskFreeRate is the
// annual rate (0 unless configured) and is converted to its daily equivalent
// for use in Sharpe/Sortino/alpha.
func NewAnalyticsService(
	snapshotRepo *repository.SnapshotRepository,
	positionRepo *repository.PositionRepository,
	quotes QuoteSource,
	benchmarkSymbol string,
	riskFreeRate float64,
) *AnalyticsService {
	return &AnalyticsService{
		snapshotRepo:    snapshotRepo,
		positionRepo:    positionRepo,
		quotes:          quotes,
		benchmarkSymbol: benchmarkSymbol,
		riskFreeDaily:   math.Pow(1+riskFreeRate, 1.0/analytics.TradingDaysPerYear) - 1,
	}
}

// GetMetrics computes the full metrics set over the recent snapshot series.
// Fails with apperrors.ErrInsufficientHistory (via analytics.DailyReturns)
// when fewer than two snapshots exist; callers treat that as the normal
// state of a young account. Benchmark unavailability degrades beta and alpha
// to zero rather than failing the whole computation.
func (s *AnalyticsService) GetMetrics(ctx context.Context) (model.Metrics, error) {
	since := time.Now().UTC().AddDate(0, 0, -analyticsWindowDays)
	snapshots, err := s.snapshotRepo.ListSnapshots(since)
	if err != nil {
		return model.Metrics{}, err
	}

	values := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		values[i] = snap.TotalValue
	}

	returns, err := analytics.DailyReturns(values)
	if err != nil {
		return model.Metrics{}, err
	}

	metrics := model.Metrics{
		Available:   true,
		SharpeRatio: round2(analytics.SharpeRatio(returns, s.riskFreeDaily)),
		Sortino:     round2(analytics.SortinoRatio(returns, s.riskFreeDaily)),
		Volatility:  round2(analytics.Volatility(returns) * 100),
		MaxDrawdown: round2(analytics.MaxDrawdown(values) * 100),
		VaR95:       round2(analytics.ValueAtRisk(returns, 0.95) * 100),
	}

	portfolioReturns, benchmarkReturns := s.alignedBenchmarkReturns(ctx, snapshots)
	if len(portfolioReturns) >= 2 {
		beta, err := analytics.Beta(portfolioReturns, benchmarkReturns)
		if err != nil {
			return model.Metrics{}, err
		}
		alpha, err := analytics.Alpha(portfolioReturns, benchmarkReturns, s.riskFreeDaily)
		if err != nil {
			return model.Metrics{}, err
		}
		metrics.Beta = round2(beta)
		metrics.Alpha = round2(alpha * 100)
	}

	return metrics, nil
}

// GetCorrelationMatrix computes the pairwise daily-return correlation of the
// open holdings over the recent price history. A holding whose history
// cannot be fetched is excluded rather than failing the matrix; with fewer
// than two usable holdings, or fewer than three trading dates shared by all
// of them, the result is marked unavailable.
func (s *AnalyticsService) GetCorrelationMatrix(ctx context.Context) (model.CorrelationMatrix, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return model.CorrelationMatrix{}, err
	}
	if len(positions) < 2 {
		return model.CorrelationMatrix{}, nil
	}

	end := time.Now().UTC().AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -analyticsWindowDays)

	closesByPosition := make([]map[string]float64, len(positions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuoteFetches)
	for i, p := range positions {
		i, p := i, p
		g.Go(func() error {
			points, err := s.quotes.History(gctx, p.Ticker, start, end)
			if err != nil {
				log.Printf("history for %s unavailable, excluded from correlation: %v", p.Ticker, err)
				return nil
			}
			closes := make(map[string]float64, len(points))
			for _, pt := range points {
				closes[pt.Date.UTC().Format("2006-01-02")] = pt.Close
			}
			closesByPosition[i] = closes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.CorrelationMatrix{}, err
	}

	// Keep the holdings that produced history. GetPositions orders by
	// ticker, so the matrix axes are alphabetical.
	var tickers []string
	var closesByTicker []map[string]float64
	for i, closes := range closesByPosition {
		if len(closes) == 0 {
			continue
		}
		tickers = append(tickers, positions[i].Ticker)
		closesByTicker = append(closesByTicker, closes)
	}
	if len(tickers) < 2 {
		return model.CorrelationMatrix{}, nil
	}

	// Correlate over the trading dates every holding has a close for.
	var sharedDates []string
	for date := range closesByTicker[0] {
		shared := true
		for _, closes := range closesByTicker[1:] {
			if _, ok := closes[date]; !ok {
				shared = false
				break
			}
		}
		if shared {
			sharedDates = append(sharedDates, date)
		}
	}
	sort.Strings(sharedDates)
	if len(sharedDates) < 3 {
		return model.CorrelationMatrix{}, nil
	}

	returnsByTicker := make([][]float64, len(tickers))
	for i, closes := range closesByTicker {
		values := make([]float64, len(sharedDates))
		for j, date := range sharedDates {
			values[j] = closes[date]
		}
		returns, err := analytics.DailyReturns(values)
		if err != nil {
			return model.CorrelationMatrix{}, err
		}
		returnsByTicker[i] = returns
	}

	matrix := make([][]float64, len(tickers))
	for i := range tickers {
		matrix[i] = make([]float64, len(tickers))
		matrix[i][i] = 1
	}
	for i := range tickers {
		for j := i + 1; j < len(tickers); j++ {
			c, err := analytics.Correlation(returnsByTicker[i], returnsByTicker[j])
			if err != nil {
				return model.CorrelationMatrix{}, err
			}
			matrix[i][j] = round2(c)
			matrix[j][i] = matrix[i][j]
		}
	}

	return model.CorrelationMatrix{Available: true, Tickers: tickers, Matrix: matrix}, nil
}

// alignedBenchmarkReturns fetches the benchmark's daily closes spanning the
// snapshot series and builds the pair of return series over the dates both
// sides have data for. Returns empty slices when the benchmark cannot be
// fetched or overlaps on fewer than three dates.
func (s *AnalyticsService) alignedBenchmarkReturns(ctx context.Context, snapshots []model.Snapshot) ([]float64, []float64) {
	if len(snapshots) < 3 || s.benchmarkSymbol == "" {
		return nil, nil
	}

	start := snapshots[0].Date
	end := snapshots[len(snapshots)-1].Date.AddDate(0, 0, 1)

	points, err := s.quotes.History(ctx, s.benchmarkSymbol, start, end)
	if err != nil {
		log.Printf("benchmark %s unavailable, skipping beta/alpha: %v", s.benchmarkSymbol, err)
		return nil, nil
	}

	closes := make(map[string]float64, len(points))
	for _, pt := range points {
		closes[pt.Date.UTC().Format("2006-01-02")] = pt.Close
	}

	// Walk consecutive snapshot dates where the benchmark also traded and
	// derive both returns over the same interval.
	var portfolioReturns, benchmarkReturns []float64
	var prevValue, prevClose float64
	havePrev := false
	for _, snap := range snapshots {
		closePrice, ok := closes[snap.Date.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		if havePrev && prevValue != 0 && prevClose != 0 {
			portfolioReturns = append(portfolioReturns, (snap.TotalValue-prevValue)/prevValue)
			benchmarkReturns = append(benchmarkReturns, (closePrice-prevClose)/prevClose)
		}
		prevValue, prevClose = snap.TotalValue, closePrice
		havePrev = true
	}

	return portfolioReturns, benchmarkReturns
}
