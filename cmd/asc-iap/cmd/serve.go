package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/asc-iap/api/openapi"
	"github.com/donaldgifford/asc-iap/internal/api/handlers"
	"github.com/donaldgifford/asc-iap/internal/api/middleware"
	"github.com/donaldgifford/asc-iap/internal/asc"
	"github.com/donaldgifford/asc-iap/internal/batch"
	"github.com/donaldgifford/asc-iap/internal/config"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 30 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: "Serves the batch API, health probes and Prometheus metrics. Runs started\n" +
			"over HTTP live in memory and are lost when the server stops.",
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, tokens, gw, err := setup()
	if err != nil {
		return err
	}

	runCtx, cancelRuns := context.WithCancel(context.Background())
	defer cancelRuns()

	orch := batch.NewOrchestrator(gw,
		batch.WithLogger(log),
		batch.WithLocales(cfg.Batch.Locales),
		batch.WithBaseTerritory(cfg.Batch.BaseTerritory),
	)
	mgr := batch.NewManager(runCtx, orch,
		batch.WithManagerLogger(log),
		batch.WithNotifier(newNotifier(cfg, log)),
	)

	e := newServer(cfg, log, tokens, gw, mgr, gw.RateLimiter())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	drainRuns(mgr, cancelRuns, log)
	log.Info("server stopped")
	return nil
}

// drainRuns cancels active runs cooperatively and waits for them. Runs
// still going after drainTimeout have their context cancelled.
func drainRuns(mgr *batch.Manager, cancelRuns context.CancelFunc, log *slog.Logger) {
	for _, snap := range mgr.List() {
		if snap.State == batch.StateRunning {
			_ = mgr.Cancel(snap.ID)
		}
	}

	done := make(chan struct{})
	go func() {
		mgr.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(drainTimeout):
		log.Warn("batch runs did not stop in time, aborting", "timeout", drainTimeout)
		cancelRuns()
		<-done
	}
}

// newServer wires middleware, probes, metrics and API operations.
func newServer(
	cfg *config.Config,
	log *slog.Logger,
	tokens handlers.TokenSource,
	catalog handlers.AppLister,
	runner handlers.BatchRunner,
	quota *asc.RateLimiter,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(tokens)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	newAPI(e, cfg, catalog, runner, quota)
	openapi.RegisterRoutes(e)

	return e
}

// newAPI registers the huma operations on e.
func newAPI(
	e *echo.Echo,
	cfg *config.Config,
	catalog handlers.AppLister,
	runner handlers.BatchRunner,
	quota *asc.RateLimiter,
) huma.API {
	humaCfg := huma.DefaultConfig("asc-iap API", Version)
	humaCfg.Info.Description = "Bulk provisioning of App Store Connect in-app purchases."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterAppRoutes(api, handlers.NewAppsHandler(catalog))
	handlers.RegisterBatchRoutes(api, handlers.NewBatchHandler(runner,
		handlers.WithDefaultExcludeChina(cfg.Batch.ExcludeChinaEnabled()),
	))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(quota))

	return api
}

var (
	_ handlers.AppLister   = (*asc.Client)(nil)
	_ handlers.BatchRunner = (*batch.Manager)(nil)
)
