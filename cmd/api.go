package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/baseline-mcp/internal/mcp"
	"github.com/Laisky/baseline-mcp/internal/web"
	"github.com/Laisky/baseline-mcp/library/log"
)

var apiCMD = &cobra.Command{
	Use:     "api",
	Short:   "api",
	Long:    `serve the stateless JSON-RPC adapter over HTTP`,
	Args:    gcmd.NoExtraArgs,
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd.Context(),
			gconfig.Shared.GetString("listen"),
			gconfig.Shared.GetString("metrics-listen"),
		)
	},
}

func runAPI(ctx context.Context, listen, metricsListen string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := newToolRegistry()
	if err != nil {
		return errors.WithStack(err)
	}

	dispatcher, err := mcp.NewDispatcher(registry, log.Logger.Named("jsonrpc"))
	if err != nil {
		return errors.Wrap(err, "new dispatcher")
	}

	engine, err := web.NewEngine(dispatcher, log.Logger.Named("web"))
	if err != nil {
		return errors.Wrap(err, "new web engine")
	}

	log.Logger.Info("start api server",
		zap.String("listen", listen),
		zap.String("metrics_listen", metricsListen),
		zap.Strings("tools", registry.Names()),
		zap.String("data_source", apiBaseURL()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.RunServer(gctx, listen, engine, log.Logger.Named("api"))
	})
	if metricsListen != "" {
		g.Go(func() error {
			return web.RunServer(gctx, metricsListen, metricsHandler(), log.Logger.Named("metrics"))
		})
	}

	return g.Wait()
}

// metricsHandler exposes the default prometheus registry on /metrics.
func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func init() {
	apiCMD.Flags().String("listen", "localhost:8080", "like `localhost:8080`, overrides BASELINE_LISTEN")
	apiCMD.Flags().String("metrics-listen", "", "serve prometheus metrics on this address, disabled when empty")
	rootCMD.AddCommand(apiCMD)
}
