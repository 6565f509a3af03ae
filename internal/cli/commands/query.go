package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	DSN    string
	Input  string
	Params []string
	Format string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run a single query against a database",
		Long: `Execute one read query against a PostgreSQL database and print the rows.

The connection is registered for the duration of the command and released
afterwards. Positional parameters bind to $1, $2, ... in order. The statement
comes from the argument, from --input, or from stdin when the argument is "-".`,
		Example: `  # Simple query
  pglens query --dsn postgres://localhost/app "SELECT * FROM users LIMIT 10"

  # Statement from a file, with positional parameters and JSON output
  pglens query --dsn postgres://localhost/app \
    --input report.sql --param 42 --format json

  # Statement from stdin
  echo "SELECT now()" | pglens query --dsn postgres://localhost/app -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := resolveSQL(cmd, opts, args)
			if err != nil {
				return err
			}
			return runQuery(cmd, opts, sql)
		},
	}

	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "PostgreSQL connection string (required)")
	cmd.Flags().StringVar(&opts.Input, "input", "", "Read the statement from a file")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "Positional query parameter (repeatable)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format (table|json|csv|markdown)")
	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}

// resolveSQL picks the statement source: --input file, "-" for stdin, or the
// positional argument.
func resolveSQL(cmd *cobra.Command, opts *QueryOptions, args []string) (string, error) {
	if opts.Input != "" {
		b, err := os.ReadFile(opts.Input)
		if err != nil {
			return "", fmt.Errorf("failed to read statement file: %w", err)
		}
		return string(b), nil
	}
	if len(args) == 0 {
		return "", errors.New("no statement given: pass it as an argument, via --input, or as - for stdin")
	}
	if args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read statement from stdin: %w", err)
		}
		return string(b), nil
	}
	return args[0], nil
}

func runQuery(cmd *cobra.Command, opts *QueryOptions, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return errors.New("statement is empty")
	}

	cc, cleanup := NewCommandContext(cmd)
	defer cleanup()

	ctx := cmd.Context()
	id, err := cc.Registry.Register(ctx, opts.DSN)
	if err != nil {
		return err
	}
	defer func() { _ = cc.Registry.Disconnect(id) }()

	params := make([]any, len(opts.Params))
	for i, p := range opts.Params {
		params[i] = p
	}

	rows, err := cc.Executor.Execute(ctx, id, sql, params)
	if err != nil {
		return err
	}

	return renderRows(cmd.OutOrStdout(), rows, opts.Format)
}
