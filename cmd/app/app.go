// Package main is the entry point for the rate history service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ratehistory/internal/config"
	"ratehistory/internal/provider"
	"ratehistory/internal/repository"
	"ratehistory/internal/service"
	"ratehistory/internal/worker"
)

// bootstrapTimeout bounds the initial document load; the full history is a
// few megabytes.
const bootstrapTimeout = 2 * time.Minute

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg            *config.Config
	logger         *zap.SugaredLogger
	db             *sql.DB
	rdbCache       *redis.Client
	rdbAsynq       *redis.Client
	asynqClient    *asynq.Client
	asynqServer    *asynq.Server
	asynqMux       *asynq.ServeMux
	asynqScheduler *asynq.Scheduler
	monitor        *asynqmon.HTTPHandler
	rateService    *service.RateService
	httpServer     *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases database and Redis connections
func (app *App) close() error {
	var errs []error
	if app.monitor != nil {
		if err := app.monitor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynqmon close: %w", err))
		}
	}
	if app.asynqClient != nil {
		if err := app.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynq client close: %w", err))
		}
	}
	if app.rdbAsynq != nil {
		if err := app.rdbAsynq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis asynq close: %w", err))
		}
	}
	if app.rdbCache != nil {
		if err := app.rdbCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis cache close: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	db, err := repository.NewPostgresDB(&app.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to Postgres: %w", err)
	}
	app.db = db

	if err := repository.RunMigrations(app.db, app.logger); err != nil {
		return fmt.Errorf("run DB migrations: %w", err)
	}

	app.rdbCache = redis.NewClient(&redis.Options{
		Addr: app.cfg.Redis.CacheAddr,
	})
	if err := app.rdbCache.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to Redis (cache, %s): %w", app.cfg.Redis.CacheAddr, err)
	}
	app.logger.Infow("Connected to Redis cache", "addr", app.cfg.Redis.CacheAddr)

	return nil
}

func (app *App) initServices() error {
	redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}
	taskTimeout := time.Duration(app.cfg.Worker.TimeoutSec) * time.Second

	app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
	app.asynqClient = asynq.NewClient(redisOpt)
	app.asynqServer = asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:              app.cfg.Worker.Concurrency,
			DelayedTaskCheckInterval: time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			TaskCheckInterval:        time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			Logger:                   app.logger,
		},
	)
	app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr)

	scheduler, err := worker.NewScheduler(redisOpt, app.cfg.Worker.RefreshCron, app.cfg.Worker.MaxRetry, taskTimeout, app.logger)
	if err != nil {
		return err
	}
	app.asynqScheduler = scheduler

	source, err := newSource(app.cfg, app.rdbCache)
	if err != nil {
		return err
	}
	sheetRepo := repository.NewPostgresSheetRepository(app.db)
	asynqEnqueuer := worker.NewAsynqEnqueuer(app.asynqClient, app.cfg.Worker.MaxRetry, taskTimeout)
	app.rateService = service.NewRateService(
		provider.NewLoader(source),
		sheetRepo,
		asynqEnqueuer,
		app.logger,
	)

	app.asynqMux = asynq.NewServeMux()
	app.asynqMux.HandleFunc(worker.TaskTypeRefreshRates, worker.NewRefreshHandler(app.rateService, app.logger))

	if app.cfg.Server.ServeAsynqmon {
		app.monitor = asynqmon.New(asynqmon.Options{
			RootPath:     monitoringPath,
			RedisConnOpt: redisOpt,
		})
	}

	app.initHTTP(app.rateService)
	return nil
}

func newSource(cfg *config.Config, cache *redis.Client) (provider.Source, error) {
	ttl := time.Duration(cfg.Cache.SourceTTLSec) * time.Second

	var sources []provider.Source

	if cfg.Source.BSIURL != "" {
		p := provider.NewBSISource(cfg.Source.BSIURL, cfg.Source.TimeoutSec)
		sources = append(sources, provider.NewCachedSource(p, cache, ttl))
	}

	if cfg.Source.FilePath != "" {
		sources = append(sources, provider.NewFileSource(cfg.Source.FilePath))
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no rate document source is configured: set source.bsi_url or source.file_path")
	}

	if len(sources) == 1 {
		return sources[0], nil
	}

	return provider.NewSourceFacade(sources...), nil
}

// Run loads the initial document, then starts the HTTP server, the Asynq
// worker and the scheduler, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	if err := app.rateService.Bootstrap(bootCtx); err != nil {
		// Keep serving: readiness stays false until a refresh succeeds.
		app.logger.Errorw("No rate document available at startup", "error", err)
	}
	cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("Starting Asynq worker server")
		if err := app.asynqServer.Start(app.asynqMux); err != nil {
			return fmt.Errorf("asynq worker failed to start: %w", err)
		}

		<-ctx.Done()
		return nil
	})

	if app.asynqScheduler != nil {
		g.Go(func() error {
			app.logger.Infow("Starting refresh scheduler", "cron", app.cfg.Worker.RefreshCron)
			if err := app.asynqScheduler.Start(); err != nil {
				return fmt.Errorf("scheduler failed to start: %w", err)
			}

			<-ctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server -> scheduler -> Asynq worker -> connections.
// In-flight refreshes finish before the DB and Redis connections close.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. Stop accepting new HTTP requests, drain in-flight
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	// 2. Stop enqueuing scheduled refreshes
	if app.asynqScheduler != nil {
		app.asynqScheduler.Shutdown()
	}

	// 3. Drain in-flight Asynq tasks
	app.asynqServer.Shutdown()

	// 4. Close connections (asynqmon, asynq client, Redis, database)
	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
