package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/handlers"
	"github.com/Mayank-31k/portfolio-tracker/internal/api/request"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
	"github.com/Mayank-31k/portfolio-tracker/internal/testutil"
)

func newFixture(t *testing.T) (*sql.DB, *testutil.MockQuoteSource, *service.PortfolioService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	quotes := testutil.NewMockQuoteSource().WithPrice("AAPL", 155)
	svc := testutil.NewTestPortfolioService(t, db, quotes)
	return db, quotes, svc
}

// TestPositionHandler_Buy tests the buy endpoint.
//
// WHY: The handler owns the HTTP contract: valid buys answer 200 with the
// refreshed summary, bad input answers 400, and an unresolvable ticker 404.
func TestPositionHandler_Buy(t *testing.T) {
	t.Run("valid buy answers 200 with the summary", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/positions", request.BuyRequest{
			Ticker: "AAPL", Quantity: 10, Price: 150,
		})
		rec := httptest.NewRecorder()
		handler.Buy(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var summary model.Summary
		testutil.DecodeJSON(t, rec, &summary)
		if summary.NumPositions != 1 || summary.CashBalance != 8500 {
			t.Errorf("Unexpected summary: %+v", summary)
		}
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewPositionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/positions", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Buy(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid quantity answers 400", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/positions", request.BuyRequest{
			Ticker: "AAPL", Quantity: -1, Price: 150,
		})
		rec := httptest.NewRecorder()
		handler.Buy(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown ticker answers 404", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/positions", request.BuyRequest{
			Ticker: "NOPE", Quantity: 10, Price: 150,
		})
		rec := httptest.NewRecorder()
		handler.Buy(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

// TestPositionHandler_Sell tests the sell endpoint.
//
// WHY: An absent body means sell-all, an explicit quantity sells part, an
// over-sell answers 400, and a ticker with no position answers 404.
func TestPositionHandler_Sell(t *testing.T) {
	buy := func(t *testing.T, svc *service.PortfolioService) {
		t.Helper()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/positions", request.BuyRequest{
			Ticker: "AAPL", Quantity: 10, Price: 150,
		})
		rec := httptest.NewRecorder()
		handlers.NewPositionHandler(svc).Buy(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Seed buy failed with %d", rec.Code)
		}
	}

	t.Run("missing body sells the entire position", func(t *testing.T) {
		_, _, svc := newFixture(t)
		buy(t, svc)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/positions/AAPL",
			map[string]string{"ticker": "AAPL"}, nil)
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var summary model.Summary
		testutil.DecodeJSON(t, rec, &summary)
		if summary.NumPositions != 0 {
			t.Errorf("Expected position closed, got %+v", summary)
		}
	})

	t.Run("explicit quantity sells part of the position", func(t *testing.T) {
		_, _, svc := newFixture(t)
		buy(t, svc)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/positions/AAPL",
			map[string]string{"ticker": "AAPL"}, strings.NewReader(`{"quantity": 4}`))
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var summary model.Summary
		testutil.DecodeJSON(t, rec, &summary)
		if summary.NumPositions != 1 || summary.Positions[0].Quantity != 6 {
			t.Errorf("Expected 6 units remaining, got %+v", summary)
		}
	})

	t.Run("over-sell answers 400", func(t *testing.T) {
		_, _, svc := newFixture(t)
		buy(t, svc)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/positions/AAPL",
			map[string]string{"ticker": "AAPL"}, strings.NewReader(`{"quantity": 11}`))
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("no open position answers 404", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/positions/MSFT",
			map[string]string{"ticker": "MSFT"}, nil)
		rec := httptest.NewRecorder()
		handler.Sell(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

// TestPortfolioHandler tests the portfolio read endpoints.
//
// WHY: Analytics on a young account must answer 200 with available=false,
// never an error status; the history endpoint must reject a bad days value.
func TestPortfolioHandler(t *testing.T) {
	newPortfolioHandler := func(t *testing.T) (*sql.DB, *handlers.PortfolioHandler) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteSource().WithPrice("AAPL", 155)
		svc := testutil.NewTestPortfolioService(t, db, quotes)
		snapshots := testutil.NewTestSnapshotService(t, db, quotes)
		analytics := testutil.NewTestAnalyticsService(t, db, quotes, "SPY")
		return db, handlers.NewPortfolioHandler(svc, analytics, snapshots)
	}

	t.Run("summary answers 200", func(t *testing.T) {
		_, handler := newPortfolioHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		rec := httptest.NewRecorder()
		handler.Summary(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var summary model.Summary
		testutil.DecodeJSON(t, rec, &summary)
		if summary.CashBalance != 10000 {
			t.Errorf("Unexpected summary: %+v", summary)
		}
	})

	t.Run("analytics without history answers 200 unavailable", func(t *testing.T) {
		_, handler := newPortfolioHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/analytics", nil)
		rec := httptest.NewRecorder()
		handler.Analytics(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var metrics model.Metrics
		testutil.DecodeJSON(t, rec, &metrics)
		if metrics.Available {
			t.Error("Expected available=false with no history")
		}
	})

	t.Run("analytics with history answers 200 with figures", func(t *testing.T) {
		db, handler := newPortfolioHandler(t)
		testutil.SeedSnapshotSeries(t, db, []float64{100, 120, 80, 90})

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/analytics", nil)
		rec := httptest.NewRecorder()
		handler.Analytics(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var metrics model.Metrics
		testutil.DecodeJSON(t, rec, &metrics)
		if !metrics.Available || metrics.MaxDrawdown != 33.33 {
			t.Errorf("Unexpected metrics: %+v", metrics)
		}
	})

	t.Run("correlation without enough holdings answers 200 unavailable", func(t *testing.T) {
		_, handler := newPortfolioHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/correlation", nil)
		rec := httptest.NewRecorder()
		handler.Correlation(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var matrix model.CorrelationMatrix
		testutil.DecodeJSON(t, rec, &matrix)
		if matrix.Available {
			t.Error("Expected available=false with no holdings")
		}
	})

	t.Run("correlation answers the holdings matrix", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		today := time.Now().UTC().Truncate(24 * time.Hour)
		points := func(closes []float64) []model.PricePoint {
			pts := make([]model.PricePoint, len(closes))
			for i, c := range closes {
				pts[i] = model.PricePoint{Date: today.AddDate(0, 0, i-len(closes)+1), Close: c}
			}
			return pts
		}
		quotes := testutil.NewMockQuoteSource().
			WithHistory("AAPL", points([]float64{100, 110, 105, 115})).
			WithHistory("MSFT", points([]float64{200, 220, 210, 230}))
		svc := testutil.NewTestPortfolioService(t, db, quotes)
		handler := handlers.NewPortfolioHandler(svc, testutil.NewTestAnalyticsService(t, db, quotes, "SPY"), nil)

		testutil.NewPosition("AAPL").Build(t, db)
		testutil.NewPosition("MSFT").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/correlation", nil)
		rec := httptest.NewRecorder()
		handler.Correlation(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var matrix model.CorrelationMatrix
		testutil.DecodeJSON(t, rec, &matrix)
		if !matrix.Available || len(matrix.Tickers) != 2 {
			t.Fatalf("Unexpected matrix: %+v", matrix)
		}
		if matrix.Matrix[0][1] != 1 {
			t.Errorf("Expected correlation 1 for proportional movers, got %v", matrix.Matrix)
		}
	})

	t.Run("history answers the seeded series", func(t *testing.T) {
		db, handler := newPortfolioHandler(t)
		testutil.SeedSnapshotSeries(t, db, []float64{100, 110})

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/history",
			map[string]string{"days": "30"})
		rec := httptest.NewRecorder()
		handler.History(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var history []model.Snapshot
		testutil.DecodeJSON(t, rec, &history)
		if len(history) != 2 {
			t.Errorf("Expected 2 snapshots, got %d", len(history))
		}
	})

	t.Run("non-positive days answers 400", func(t *testing.T) {
		_, handler := newPortfolioHandler(t)

		for _, days := range []string{"0", "-5", "abc"} {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/history",
				map[string]string{"days": days})
			rec := httptest.NewRecorder()
			handler.History(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for days=%s, got %d", days, rec.Code)
			}
		}
	})

	t.Run("refresh reports failed tickers with 200", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteSource().WithPrice("AAPL", 170)
		svc := testutil.NewTestPortfolioService(t, db, quotes)
		handler := handlers.NewPortfolioHandler(svc, testutil.NewTestAnalyticsService(t, db, quotes, "SPY"), nil)

		testutil.NewPosition("AAPL").WithLastPrice(150).Build(t, db)
		testutil.NewPosition("GONE").WithLastPrice(10).Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/refresh", nil)
		rec := httptest.NewRecorder()
		handler.Refresh(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var summary model.Summary
		testutil.DecodeJSON(t, rec, &summary)
		if len(summary.FailedTickers) != 1 || summary.FailedTickers[0] != "GONE" {
			t.Errorf("Expected failed tickers [GONE], got %v", summary.FailedTickers)
		}
	})
}

// TestAccountHandler tests the account endpoints.
//
// WHY: Reset must answer with the restored account so the client can render
// the new balance without a second request.
func TestAccountHandler(t *testing.T) {
	t.Run("get answers the current account", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewAccountHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var account model.Account
		testutil.DecodeJSON(t, rec, &account)
		if account.CashBalance != 10000 || account.InitialBalance != 10000 {
			t.Errorf("Unexpected account: %+v", account)
		}
	})

	t.Run("reset restores the starting balance", func(t *testing.T) {
		_, _, svc := newFixture(t)

		buyReq := testutil.NewJSONRequest(t, http.MethodPost, "/api/positions", request.BuyRequest{
			Ticker: "AAPL", Quantity: 10, Price: 150,
		})
		buyRec := httptest.NewRecorder()
		handlers.NewPositionHandler(svc).Buy(buyRec, buyReq)

		handler := handlers.NewAccountHandler(svc)
		req := httptest.NewRequest(http.MethodPost, "/api/account/reset", nil)
		rec := httptest.NewRecorder()
		handler.Reset(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var account model.Account
		testutil.DecodeJSON(t, rec, &account)
		if account.CashBalance != 10000 {
			t.Errorf("Expected restored balance, got %+v", account)
		}
	})
}

// TestTransactionHandler tests the journal endpoint.
//
// WHY: The limit parameter must be validated and the journal returned
// newest first.
func TestTransactionHandler(t *testing.T) {
	t.Run("lists the journal", func(t *testing.T) {
		db, _, svc := newFixture(t)
		testutil.SeedTransaction(t, db, "AAPL", model.TransactionBuy, 10, 150)
		handler := handlers.NewTransactionHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var transactions []model.Transaction
		testutil.DecodeJSON(t, rec, &transactions)
		if len(transactions) != 1 {
			t.Errorf("Expected 1 transaction, got %d", len(transactions))
		}
	})

	t.Run("invalid limit answers 400", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewTransactionHandler(svc)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transactions",
			map[string]string{"limit": "-1"})
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

// TestStockHandler tests the ad-hoc quote endpoint.
//
// WHY: Quotes are served for any syntactically valid ticker whether held or
// not, and the error taxonomy must reach the client as the right status.
func TestStockHandler(t *testing.T) {
	t.Run("answers a quote for a known ticker", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewStockHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/AAPL",
			map[string]string{"ticker": "AAPL"}, nil)
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var quote model.Quote
		testutil.DecodeJSON(t, rec, &quote)
		if quote.Ticker != "AAPL" || quote.Price != 155 {
			t.Errorf("Unexpected quote: %+v", quote)
		}
	})

	t.Run("unknown ticker answers 404", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewStockHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/NOPE",
			map[string]string{"ticker": "NOPE"}, nil)
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})

	t.Run("malformed ticker answers 400", func(t *testing.T) {
		_, _, svc := newFixture(t)
		handler := handlers.NewStockHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/not-a-ticker!",
			map[string]string{"ticker": "not a ticker!"}, nil)
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

// TestSystemHandler tests health and version endpoints.
//
// WHY: Health must reflect actual database connectivity so orchestration can
// restart a wedged instance.
func TestSystemHandler(t *testing.T) {
	t.Run("healthy database answers 200", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("closed database answers 503", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", rec.Code)
		}
	})

	t.Run("version answers 200", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		rec := httptest.NewRecorder()
		handler.Version(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})
}
