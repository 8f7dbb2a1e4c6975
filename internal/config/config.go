package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	BrokerURL            string
	UserServiceAddress   string
	OrderPlacedQueue     string
	OrderUpdatesQueue    string
	RecommendationsQueue string
	StatusTickInterval   time.Duration
	ReconnectDelay       time.Duration
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress           = ":8080"
	defaultOrderPlacedQueue     = "order_placed_queue"
	defaultOrderUpdatesQueue    = "order_updates_queue"
	defaultRecommendationsQueue = "recommendations_queue"
	defaultStatusTickInterval   = 30 * time.Second
	defaultReconnectDelay       = 5 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		BrokerURL:            getString(lookup, "BROKER_URL", ""),
		UserServiceAddress:   getString(lookup, "USER_SERVICE_URL", ""),
		OrderPlacedQueue:     getString(lookup, "ORDER_PLACED_QUEUE", defaultOrderPlacedQueue),
		OrderUpdatesQueue:    getString(lookup, "ORDER_UPDATES_QUEUE", defaultOrderUpdatesQueue),
		RecommendationsQueue: getString(lookup, "RECOMMEND_QUEUE", defaultRecommendationsQueue),
		StatusTickInterval:   getDuration(lookup, "STATUS_TICK_INTERVAL", defaultStatusTickInterval),
		ReconnectDelay:       getDuration(lookup, "BROKER_RECONNECT_DELAY", defaultReconnectDelay),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ordermesh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tickIntervalStr    = cfg.StatusTickInterval.String()
		reconnectDelayStr  = cfg.ReconnectDelay.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BrokerURL, "b", cfg.BrokerURL, "Message broker AMQP URL")
	fs.StringVar(&cfg.UserServiceAddress, "u", cfg.UserServiceAddress, "User service base URL")
	fs.StringVar(&cfg.OrderPlacedQueue, "order-placed-queue", cfg.OrderPlacedQueue, "Queue for order placement events")
	fs.StringVar(&cfg.OrderUpdatesQueue, "order-updates-queue", cfg.OrderUpdatesQueue, "Queue for order status events")
	fs.StringVar(&cfg.RecommendationsQueue, "recommendations-queue", cfg.RecommendationsQueue, "Queue for recommendation events")
	fs.StringVar(&tickIntervalStr, "tick-interval", tickIntervalStr, "Interval between order status advances")
	fs.StringVar(&reconnectDelayStr, "reconnect-delay", reconnectDelayStr, "Delay between broker connection attempts")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StatusTickInterval, err = time.ParseDuration(tickIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid tick interval: %w", err)
	}

	if cfg.ReconnectDelay, err = time.ParseDuration(reconnectDelayStr); err != nil {
		return nil, fmt.Errorf("invalid reconnect delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.StatusTickInterval <= 0 {
		cfg.StatusTickInterval = defaultStatusTickInterval
	}

	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BrokerURL == "" {
		return nil, fmt.Errorf("broker URL must be provided")
	}

	if cfg.UserServiceAddress == "" {
		return nil, fmt.Errorf("user service address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

