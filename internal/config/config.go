package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	PushGatewayAddress string
	JWTSecret          string
	NotifyPollInterval time.Duration
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	NotifyBatchSize    int
}

const (
	defaultRunAddress         = ":8080"
	defaultPushGatewayAddress = "https://exp.host/--/api/v2/push"
	defaultJWTSecret          = "change-me-in-production"
	defaultNotifyPollInterval = 3 * time.Second
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultNotifyBatchSize    = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		PushGatewayAddress: getString(lookup, "PUSH_GATEWAY_ADDRESS", defaultPushGatewayAddress),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		NotifyPollInterval: getDuration(lookup, "NOTIFY_POLL_INTERVAL", defaultNotifyPollInterval),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyBatchSize:    getInt(lookup, "NOTIFY_BATCH_SIZE", defaultNotifyBatchSize),
	}

	fs := flag.NewFlagSet("freshfold", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.NotifyPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PushGatewayAddress, "push-gateway", cfg.PushGatewayAddress, "Push gateway base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between notification queue polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.NotifyBatchSize, "poll-batch", cfg.NotifyBatchSize, "Maximum notifications per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PushGatewayAddress == "" {
		return nil, fmt.Errorf("push gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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
