package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mayank-31k/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/Mayank-31k/portfolio-tracker/internal/api/middleware"
	"github.com/Mayank-31k/portfolio-tracker/internal/config"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	analyticsService *service.AnalyticsService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService, analyticsService, snapshotService)
			r.Get("/", portfolioHandler.Summary)
			r.Post("/refresh", portfolioHandler.Refresh)
			r.Get("/analytics", portfolioHandler.Analytics)
			r.Get("/correlation", portfolioHandler.Correlation)
			r.Get("/history", portfolioHandler.History)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(portfolioService)
			r.Post("/", positionHandler.Buy)
			r.Delete("/{ticker}", positionHandler.Sell)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(portfolioService)
			r.Get("/", transactionHandler.List)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(portfolioService)
			r.Get("/", accountHandler.Get)
			r.Post("/reset", accountHandler.Reset)
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(portfolioService)
			r.Get("/{ticker}", stockHandler.Quote)
		})
	})

	return r
}
