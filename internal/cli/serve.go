package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/ecofocus/internal/config"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/server"
)

// ServeParams holds the parameters for the serve command execution.
type ServeParams struct {
	Addr string
}

// NewServeCmd creates the "serve" command running the HTTP API.
func NewServeCmd() *cobra.Command {
	var params ServeParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		Long: `Serve the simulation API until interrupted.

Routes:
  GET  /healthz
  GET  /metrics
  GET  /api/impacts
  GET  /api/textile/processes
  GET  /api/textile/materials
  GET  /api/textile/products
  POST /api/textile/simulator
  POST /api/textile/simulator/detailed

SIGHUP reloads the catalog without dropping connections.`,
		Example: `  # Serve on the configured address
  ecofocus serve

  # Serve a SQLite catalog on port 9090
  ecofocus serve --catalog-db catalog.db --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if params.Addr == "" {
				params.Addr = config.GetGlobalConfig().Server.Addr
			}
			return executeServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func executeServe(cmd *cobra.Command, params ServeParams) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(snap,
		server.WithMemoTTL(config.GetGlobalConfig().Server.MemoTTL),
		server.WithLogger(*logging.FromContext(ctx)),
	)
	if err != nil {
		return err
	}

	go reloadOnHangup(ctx, srv)
	return srv.ListenAndServe(ctx, params.Addr)
}

// reloadOnHangup swaps the served catalog on every SIGHUP. A catalog that
// fails to load leaves the current one in place.
func reloadOnHangup(ctx context.Context, srv *server.Server) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			snap, err := loadSnapshot(ctx)
			if err != nil {
				logger.Error().Ctx(ctx).Err(err).Msg("catalog reload failed, keeping the current catalog")
				continue
			}
			srv.SetSnapshot(snap)
		}
	}
}
