// Package commands implements the pglens subcommands.
package commands

import (
	"log/slog"
	"time"

	"github.com/leapstack-labs/pglens/internal/analyzer"
	"github.com/leapstack-labs/pglens/internal/config"
	"github.com/leapstack-labs/pglens/internal/introspect"
	"github.com/leapstack-labs/pglens/internal/query"
	"github.com/leapstack-labs/pglens/internal/registry"
	"github.com/spf13/cobra"
)

// CommandContext holds the common dependencies of the pglens subcommands.
type CommandContext struct {
	Cfg          *config.Config
	Logger       *slog.Logger
	Registry     *registry.Registry
	Executor     *query.Executor
	Analyzer     *analyzer.Analyzer
	Introspector *introspect.Introspector
}

// NewCommandContext builds the service stack from the loaded configuration.
// Returns the context and a cleanup function that must be called (typically
// via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func()) {
	cfg := getConfig(cmd)
	logger := config.GetLogger(cmd.Context())

	reg := registry.New(registry.Config{
		MinConns:       cfg.Pool.MinConns,
		MaxConns:       cfg.Pool.MaxConns,
		AcquireTimeout: cfg.Pool.AcquireTimeout,
		ConnectTimeout: cfg.Pool.ConnectTimeout,
	}, logger)

	exec := query.NewExecutor(reg, cfg.Query.Timeout, logger)

	cleanup := func() {
		reg.Close()
	}

	return &CommandContext{
		Cfg:          cfg,
		Logger:       logger,
		Registry:     reg,
		Executor:     exec,
		Analyzer:     analyzer.New(reg, cfg.Query.Timeout, logger),
		Introspector: introspect.New(exec, logger),
	}, cleanup
}

// getConfig returns the loaded configuration, falling back to defaults when
// the command runs without the root's PersistentPreRunE (tests, mostly).
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		return cfg
	}
	return &config.Config{
		Listen: config.DefaultListen,
		Pool: config.PoolConfig{
			MinConns:       config.DefaultMinConns,
			MaxConns:       config.DefaultMaxConns,
			AcquireTimeout: 30 * time.Second,
			ConnectTimeout: 10 * time.Second,
		},
		Query: config.QueryConfig{Timeout: 60 * time.Second},
		Log:   config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultLogFormat},
	}
}
