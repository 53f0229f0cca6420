package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/platform/scheduler"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

const liveSyncJobName = "live-sync"

// App owns the HTTP server, the optional in-process scheduler and the storage handle.
type App struct {
	Server    *http.Server
	scheduler *scheduler.Scheduler
	logger    *logging.Logger
	closers   []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open repositories: %w", err)
	}
	a := &App{logger: logger, closers: []func() error{closeRepos}}

	svc, err := buildServices(cfg, repos, logger)
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("build services: %w", err)
	}

	handler := httpapi.NewHandler(
		svc.competition,
		svc.game,
		svc.bet,
		svc.team,
		svc.ranking,
		svc.dashboard,
		svc.scoring,
		svc.setting,
		svc.liveSync,
		svc.orchestrator,
		logger,
	)
	router := httpapi.NewRouter(handler, newTokenVerifier(cfg.Anubis, logger.Named("anubis")), logger.Named("http"), httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.Scheduler.Mode == config.SchedulerCron {
		a.scheduler, err = newLiveSyncScheduler(cfg.Scheduler, svc.liveSync, logger.Named("scheduler"))
		if err != nil {
			_ = a.close()
			return nil, err
		}
	}

	return a, nil
}

func newLiveSyncScheduler(cfg config.SchedulerConfig, liveSync *usecase.LiveSyncService, logger *logging.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger, scheduler.Options{
		RunOnStart: cfg.RunOnStart,
		JobTimeout: cfg.JobTimeout,
	})
	err := s.Add(liveSyncJobName, cfg.LiveSyncCron, func(ctx context.Context) error {
		_, err := liveSync.Run(ctx, usecase.LiveSyncInput{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start serves HTTP in the background. Listen errors other than a clean shutdown go to errCh.
func (a *App) Start(errCh chan<- error) {
	if a.scheduler != nil {
		a.scheduler.Start()
		for _, next := range a.scheduler.NextRuns() {
			a.logger.Info("scheduled job registered", "job", liveSyncJobName, "next_run", next)
		}
	}

	go func() {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
