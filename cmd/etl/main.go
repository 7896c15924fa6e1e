// Command etl collates every submitted log sheet in the configured
// directory into one canonical batch, renders the master log workbook,
// and synchronizes the MongoDB launches and aircraft-info collections.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/glidewing/flight-log-etl/internal/adapter/http"
	"github.com/glidewing/flight-log-etl/internal/adapter/mongostore"
	"github.com/glidewing/flight-log-etl/internal/adapter/xlsx"
	"github.com/glidewing/flight-log-etl/internal/collate"
	"github.com/glidewing/flight-log-etl/internal/config"
	"github.com/glidewing/flight-log-etl/internal/domain"
	"github.com/glidewing/flight-log-etl/internal/observability"
	storesync "github.com/glidewing/flight-log-etl/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status := &runStatus{}

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, status, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := run(ctx, cfg, logger, metrics, status)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("run complete")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, status *runStatus) error {
	metrics.PipelineRunning.Set(1)
	defer metrics.PipelineRunning.Set(0)

	clock := clockwork.NewRealClock()

	client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect error", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDatabase)

	collator := collate.New(xlsx.Opener{}, logger, metrics)
	batch, err := collator.Collate(ctx, cfg.LogSheetsDir)
	if err != nil {
		return err
	}

	writer := xlsx.NewMasterLogWriter(clock, logger)
	if _, err := writer.Write(batch.Launches, cfg.MasterLogPath); err != nil {
		return err
	}

	launches := storesync.New(
		mongostore.NewCollection[domain.Launch](db, cfg.LaunchesCollection, logger),
		logger, metrics, clock,
	)
	if err := launches.Sync(ctx, batch.Launches); err != nil {
		return err
	}

	utilization := storesync.New(
		mongostore.NewCollection[domain.AircraftUtilization](db, cfg.UtilizationCollection, logger),
		logger, metrics, clock,
	)
	if err := utilization.Sync(ctx, batch.Utilization); err != nil {
		return err
	}

	status.markReady()
	return nil
}

// runStatus reports readiness once a full collate-and-sync pass has
// completed.
type runStatus struct {
	ready atomic.Bool
}

func (r *runStatus) markReady() { r.ready.Store(true) }

func (r *runStatus) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}
