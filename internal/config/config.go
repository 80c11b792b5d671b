package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Account   AccountConfig
	Market    MarketConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AccountConfig holds simulated-account configuration.
type AccountConfig struct {
	InitialBalance float64
}

// MarketConfig holds price-source and analytics configuration.
type MarketConfig struct {
	BenchmarkSymbol string
	// RiskFreeRate is the annual risk-free rate used by Sharpe/Sortino/alpha.
	// Zero unless configured.
	RiskFreeRate float64
}

// SchedulerConfig holds cron schedules for background jobs.
type SchedulerConfig struct {
	RefreshSchedule  string
	SnapshotSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	initialBalance, err := getEnvFloat("INITIAL_BALANCE", 10000)
	if err != nil {
		return nil, err
	}
	riskFreeRate, err := getEnvFloat("RISK_FREE_RATE", 0)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Account: AccountConfig{
			InitialBalance: initialBalance,
		},
		Market: MarketConfig{
			BenchmarkSymbol: getEnv("BENCHMARK_SYMBOL", "SPY"),
			RiskFreeRate:    riskFreeRate,
		},
		Scheduler: SchedulerConfig{
			RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "@every 5m"),
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 21 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat gets a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
