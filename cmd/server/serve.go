package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/maxviazov/listresult/internal/config"
	"github.com/maxviazov/listresult/internal/handler"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/maxviazov/listresult/internal/repository/memory"
	"github.com/maxviazov/listresult/internal/repository/postgres"
	"github.com/maxviazov/listresult/internal/service"
)

const shutdownTimeout = 10 * time.Second

// backend bundles the repositories one storage choice provides.
type backend struct {
	teams   repository.TeamRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	stats   repository.StatsRepository
	tx      repository.TxManager
	pinger  repository.Pinger
	close   func()
}

func serve(parent context.Context, a app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := a.cfg, a.log
	zerolog.DefaultContextLogger = &appLogger

	be, err := openBackend(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Error().Err(err).Str("storage", cfg.App.Storage).Msg("storage initialization failed")
		return err
	}
	defer be.close()

	paging := service.Paging{DefaultSize: cfg.Paging.DefaultSize, MaxSize: cfg.Paging.MaxSize}
	teamSvc := service.NewTeamService(be.teams, paging, appLogger)
	playerSvc := service.NewPlayerService(be.players, be.teams, paging, appLogger)
	gameSvc := service.NewGameService(be.games, be.teams, be.tx, paging, appLogger)
	statsSvc := service.NewStatsService(be.stats, be.players, be.games, be.tx, paging, appLogger)

	if cfg.Logger.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	opts := handler.MiddlewareOptions{
		Logger:      appLogger,
		CorsOrigins: cfg.App.CorsOrigins,
		Development: cfg.Logger.Env != "prod",
	}
	if cfg.App.Metrics {
		opts.Registry = prometheus.NewRegistry()
	}
	if err := handler.UseMiddleware(engine, opts); err != nil {
		return err
	}
	handler.Register(engine, be.pinger, teamSvc, playerSvc, gameSvc, statsSvc)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("storage", cfg.App.Storage).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown requested")
	case serveErr = <-errCh:
		if serveErr != nil {
			appLogger.Error().Err(serveErr).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("service stopped")
	return serveErr
}

func openBackend(ctx context.Context, cfg *config.Config, l *zerolog.Logger) (*backend, error) {
	if cfg.App.Storage == "memory" {
		st := memory.NewStore()
		return &backend{
			teams:   memory.NewTeamRepository(st),
			players: memory.NewPlayerRepository(st),
			games:   memory.NewGameRepository(st),
			stats:   memory.NewStatsRepository(st),
			tx:      memory.NewTxManager(),
			pinger:  memory.NewPinger(),
			close:   func() {},
		}, nil
	}

	repo, err := repository.New(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.AutoMigrate {
		if err := repo.Migrate(ctx, cfg.Postgres.MigrationsDir); err != nil {
			repo.Close()
			return nil, err
		}
		l.Info().Str("dir", cfg.Postgres.MigrationsDir).Msg("migrations applied")
	}
	pool := repo.Pool()
	return &backend{
		teams:   postgres.NewTeamRepository(pool),
		players: postgres.NewPlayerRepository(pool),
		games:   postgres.NewGameRepository(pool),
		stats:   postgres.NewStatsRepository(pool),
		tx:      postgres.NewTxManager(pool),
		pinger:  postgres.NewPinger(pool),
		close:   repo.Close,
	}, nil
}
