package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	DSN string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <sql>",
		Short: "Describe a query's result shape",
		Long: `Analyze one read query without materializing its full result set.

Prints a JSON descriptor with per-column logical types (quantitative,
temporal, nominal), distinct counts and min/max ranges, the query's GROUP BY
columns and its total row count.`,
		Example: `  pglens analyze --dsn postgres://localhost/app \
    "SELECT region, SUM(total) FROM orders GROUP BY region"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "PostgreSQL connection string (required)")
	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, sql string) error {
	cc, cleanup := NewCommandContext(cmd)
	defer cleanup()

	ctx := cmd.Context()
	id, err := cc.Registry.Register(ctx, opts.DSN)
	if err != nil {
		return err
	}
	defer func() { _ = cc.Registry.Disconnect(id) }()

	meta, err := cc.Analyzer.Analyze(ctx, id, sql)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
