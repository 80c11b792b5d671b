package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/api"
	"github.com/Mayank-31k/portfolio-tracker/internal/config"
	"github.com/Mayank-31k/portfolio-tracker/internal/database"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
	"github.com/Mayank-31k/portfolio-tracker/internal/scheduler"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
	"github.com/Mayank-31k/portfolio-tracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Seed the cash account on first run
	if _, err := accountRepo.EnsureAccount(cfg.Account.InitialBalance); err != nil {
		log.Fatalf("Failed to initialize account: %v", err)
	}

	// Create services
	quotes := yahoo.NewFinanceClient()
	systemService := service.NewSystemService(db)
	portfolioService := service.NewPortfolioService(
		positionRepo,
		transactionRepo,
		accountRepo,
		quotes,
	)
	snapshotService := service.NewSnapshotService(
		snapshotRepo,
		portfolioService,
	)
	analyticsService := service.NewAnalyticsService(
		snapshotRepo,
		positionRepo,
		quotes,
		cfg.Market.BenchmarkSymbol,
		cfg.Market.RiskFreeRate,
	)

	// Start the background price-refresh and snapshot jobs
	sched, err := scheduler.New(
		portfolioService,
		snapshotService,
		cfg.Scheduler.RefreshSchedule,
		cfg.Scheduler.SnapshotSchedule,
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(systemService, portfolioService, analyticsService, snapshotService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
