// Package app initializes and runs the marketplace server: configuration,
// logging, database and migrations, settlement backend selection, the JSON
// API listener, the metrics listener, and graceful shutdown.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stormarket/stormarket/internal/api"
	"github.com/stormarket/stormarket/internal/config"
	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/metrics"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
	"github.com/stormarket/stormarket/internal/retrievalgw"
	"github.com/stormarket/stormarket/internal/services"
	"github.com/stormarket/stormarket/internal/settlement"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *api.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	backend, err := selectSettlementBackend(cfg)
	if err != nil {
		return nil, err
	}

	gateway := retrievalgw.NewGateway(cfg)
	sequencer := services.NewActivationSequencer(db, rm, backend, cfg, logger)

	dealSvc := services.NewDealService(db, rm, sequencer, gateway, cfg, logger)
	walletSvc := services.NewWalletService(db, rm)
	networkSvc := services.NewNetworkService(db, rm, logger)
	shareSvc := services.NewShareLinkService(db, rm, cfg)
	backupSvc := services.NewBackupService(db, rm)

	server := api.NewServer(cfg, logger, dealSvc, walletSvc, networkSvc, shareSvc, backupSvc)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func selectSettlementBackend(cfg *config.Config) (settlement.Backend, error) {
	switch cfg.SettlementMode {
	case "mock":
		return settlement.NewMockBackend(2 * time.Second), nil
	case "remote":
		if cfg.SettlementEndpoint == "" {
			return nil, fmt.Errorf("settlement mode %q requires an endpoint", cfg.SettlementMode)
		}
		return settlement.NewRemoteBackend(cfg.SettlementEndpoint, cfg.SettlementTimeout), nil
	default:
		return nil, fmt.Errorf("unknown settlement mode %q", cfg.SettlementMode)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting marketplace server",
		"addr", app.config.EndpointAddr, "metrics_addr", app.config.MetricsAddr)

	app.initSignalHandler(cancelFunc)

	metricsSrv := &http.Server{Addr: app.config.MetricsAddr, Handler: metrics.Handler()}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(app.config.EndpointAddr); err != nil {
			app.logger.Error(ctx, "api listener stopped", "error", err)
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "metrics listener stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()
	app.logger.Info(ctx, "shutting down")

	if err := app.server.Shutdown(); err != nil {
		app.logger.Error(ctx, "api shutdown error", "error", err)
	}
	if err := metricsSrv.Shutdown(context.Background()); err != nil {
		app.logger.Error(ctx, "metrics shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	wg.Wait()
}
