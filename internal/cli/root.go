// Package cli provides the command-line interface for pglens.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/pglens/internal/cli/commands"
	"github.com/leapstack-labs/pglens/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pglens",
		Short: "pglens - PostgreSQL inspection server",
		Long: `pglens serves PostgreSQL query execution, query shape analysis and
schema introspection over HTTP, keyed by opaque connection ids.

Connections are registered at runtime; clients never see credentials again
after the initial registration.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, config.NewLogger(cfg.Log))
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
PostgreSQL inspection server
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pglens.yaml)")
	rootCmd.PersistentFlags().String("listen", "", "HTTP listen address")
	rootCmd.PersistentFlags().Int32("pool-min-conns", 0, "Minimum pooled connections per registered database")
	rootCmd.PersistentFlags().Int32("pool-max-conns", 0, "Maximum pooled connections per registered database")
	rootCmd.PersistentFlags().Duration("pool-acquire-timeout", 0, "How long to wait for a pooled connection")
	rootCmd.PersistentFlags().Duration("pool-connect-timeout", 0, "How long to wait when opening a connection")
	rootCmd.PersistentFlags().Duration("query-timeout", 0, "Per-statement execution timeout (0 disables)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
