// Package analytics computes risk/performance statistics from an ordered
// series of portfolio valuations. Every function is pure and deterministic:
// identical input series always yield identical output, which is what makes
// the package testable without any store or price source.
//
// Conventions:
//   - Return series are daily fractions (0.01 = 1%).
//   - Annualization uses the 252 trading-days convention.
//   - Volatility, drawdown, and VaR are returned as fractions; callers that
//     present percentages multiply by 100 at the boundary.
//   - VaR follows the historical-simulation sign convention: a loss is
//     negative.
package analytics

import (
	"math"
	"sort"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
)

// TradingDaysPerYear is the standard annualization factor.
const TradingDaysPerYear = 252

// DailyReturns computes r[i] = (v[i] - v[i-1]) / v[i-1] for an ascending
// value series. Fails with ErrInsufficientHistory when fewer than two points
// exist. An interval starting from a zero value contributes a zero return
// rather than a division by zero.
func DailyReturns(values []float64) ([]float64, error) {
	if len(values) < 2 {
		return nil, apperrors.ErrInsufficientHistory
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	return returns, nil
}

// Volatility returns the annualized sample standard deviation of a
// daily-return series, as a fraction.
func Volatility(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	return stdDev(returns) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio returns the annualized risk-adjusted excess return:
// (mean(r) - riskFreeDaily) / stdev(r) * sqrt(252). A flat series has no
// risk-adjusted excess to report, so a zero standard deviation yields 0
// rather than NaN.
func SharpeRatio(returns []float64, riskFreeDaily float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sd := stdDev(returns)
	if sd == 0 {
		return 0
	}
	return (mean(returns) - riskFreeDaily) / sd * math.Sqrt(TradingDaysPerYear)
}

// SortinoRatio is the Sharpe variant that penalizes only downside
// volatility: annualized mean excess return over the standard deviation of
// negative excess returns. Returns 0 when there is no downside.
func SortinoRatio(returns []float64, riskFreeDaily float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	excess := make([]float64, len(returns))
	var downside []float64
	for i, r := range returns {
		excess[i] = r - riskFreeDaily
		if excess[i] < 0 {
			downside = append(downside, excess[i])
		}
	}

	sd := stdDev(downside)
	if sd == 0 {
		return 0
	}
	return mean(excess) / sd * math.Sqrt(TradingDaysPerYear)
}

// MaxDrawdown returns the largest peak-to-trough decline over the value
// series as a positive fraction: max over i of (peak - v[i]) / peak, where
// peak is the running maximum.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Beta returns covariance(portfolio, benchmark) / variance(benchmark). The
// two return series must be aligned to the same dates; mismatched lengths
// fail with ErrMisalignedSeries. A benchmark with zero variance yields 0.
func Beta(portfolio, benchmark []float64) (float64, error) {
	if len(portfolio) != len(benchmark) {
		return 0, apperrors.ErrMisalignedSeries
	}
	if len(portfolio) < 2 {
		return 0, apperrors.ErrInsufficientHistory
	}

	benchVar := variance(benchmark)
	if benchVar == 0 {
		return 0, nil
	}
	return covariance(portfolio, benchmark) / benchVar, nil
}

// Alpha returns the annualized CAPM alpha as a fraction:
// (mean(p) - (rf + beta*(mean(b) - rf))) * 252. With a zero risk-free rate
// this reduces to mean(p) - beta*mean(b), annualized.
func Alpha(portfolio, benchmark []float64, riskFreeDaily float64) (float64, error) {
	beta, err := Beta(portfolio, benchmark)
	if err != nil {
		return 0, err
	}

	daily := mean(portfolio) - (riskFreeDaily + beta*(mean(benchmark)-riskFreeDaily))
	return daily * TradingDaysPerYear, nil
}

// Correlation returns the Pearson correlation coefficient of two aligned
// daily-return series. Mismatched lengths fail with ErrMisalignedSeries;
// fewer than two points fail with ErrInsufficientHistory. A series with zero
// variance has no co-movement to measure and yields 0.
func Correlation(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, apperrors.ErrMisalignedSeries
	}
	if len(xs) < 2 {
		return 0, apperrors.ErrInsufficientHistory
	}

	sx, sy := stdDev(xs), stdDev(ys)
	if sx == 0 || sy == 0 {
		return 0, nil
	}
	return covariance(xs, ys) / (sx * sy), nil
}

// ValueAtRisk returns the historical-simulation VaR at the given confidence
// level: the (1 - confidence) percentile of the daily-return distribution,
// as a (typically negative) fraction. Uses linear interpolation between
// order statistics.
func ValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	return percentile(returns, (1-confidence)*100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the sample variance (n-1 denominator).
func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

func stdDev(values []float64) float64 {
	return math.Sqrt(variance(values))
}

// covariance is the sample covariance of two equal-length series.
func covariance(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}

// percentile computes the p-th percentile (0-100) with linear interpolation,
// matching the numpy default used by the historical-simulation method.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
