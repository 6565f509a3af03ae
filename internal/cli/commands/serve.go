package commands

import (
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/pglens/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the pglens HTTP server.

Clients register connections with POST /connect, then execute queries,
analyze result shapes and introspect schemas using the returned opaque
connection id. GET /capabilities lists every exposed operation.`,
		Example: `  # Start with defaults (listens on :8080)
  pglens serve

  # Custom listen address and query timeout
  pglens serve --listen :9000 --query-timeout 30s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup := NewCommandContext(cmd)
			defer cleanup()

			svc := &server.Service{
				Registrar:    cc.Registry,
				Executor:     cc.Executor,
				Analyzer:     cc.Analyzer,
				Introspector: cc.Introspector,
			}
			srv := server.New(svc, cc.Cfg.Listen, cc.Logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}
}
