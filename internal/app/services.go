package app

import (
	"context"
	"net/http"

	"github.com/riskibarqy/prediction-league/external/footballdata"
	"github.com/riskibarqy/prediction-league/external/jobqueue"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/domain/teammatch"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/account/anubis"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const providerFootballData = "football-data"

type services struct {
	competition  *usecase.CompetitionService
	game         *usecase.GameService
	bet          *usecase.BetService
	team         *usecase.TeamService
	ranking      *usecase.RankingService
	dashboard    *usecase.DashboardService
	scoring      *usecase.ScoringService
	setting      *usecase.SettingService
	liveSync     *usecase.LiveSyncService
	orchestrator *usecase.JobOrchestratorService
}

func buildServices(cfg config.Config, repos repositories, logger *logging.Logger) (*services, error) {
	ids := idgen.NewUUIDGenerator()

	settingSvc := usecase.NewSettingService(repos.settings, usecase.DefaultSettingDefaults(), logger.Named("settings"))
	scoringSvc := usecase.NewScoringService(repos.games, repos.bets, settingSvc, cfg.LiveSync.ScoringWorkers, logger.Named("scoring"))
	rankingSvc := usecase.NewRankingService(repos.competitions, repos.games, repos.bets)

	var provider usecase.LiveScoreProvider
	if cfg.FootballData.Enabled {
		provider = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:        cfg.FootballData.BaseURL,
			Token:          cfg.FootballData.Token,
			Timeout:        cfg.FootballData.Timeout,
			MaxRetries:     cfg.FootballData.MaxRetries,
			RetryBackoff:   cfg.FootballData.RetryBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.FootballData.CircuitBreaker,
		})
	} else {
		logger.Info("live score provider disabled", "reason", "FOOTBALL_DATA_ENABLED=false")
	}

	liveSyncSvc := usecase.NewLiveSyncService(
		repos.competitions,
		repos.games,
		repos.teams,
		repos.rawData,
		provider,
		settingSvc,
		scoringSvc,
		ids,
		usecase.LiveSyncConfig{
			Window:           cfg.LiveSync.Window,
			KickoffTolerance: cfg.LiveSync.KickoffTolerance,
			MaxWorkers:       cfg.LiveSync.MaxWorkers,
			ArchivePayloads:  cfg.LiveSync.ArchivePayloads,
			ProviderName:     providerFootballData,
		},
		logger,
	)

	queue := usecase.NewNoopJobQueue()
	if cfg.Scheduler.Mode == config.SchedulerQStash {
		publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStash.BaseURL,
			Token:            cfg.QStash.Token,
			TargetBaseURL:    cfg.QStash.TargetBaseURL,
			Retries:          cfg.QStash.Retries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStash.CircuitBreaker,
		}, logger)
		if err != nil {
			return nil, err
		}
		queue = publisher
	}

	return &services{
		competition: usecase.NewCompetitionService(repos.competitions, ids, logger.Named("competition")),
		game:        usecase.NewGameService(repos.competitions, repos.games, repos.teams, scoringSvc, ids, logger.Named("game")),
		bet:         usecase.NewBetService(repos.competitions, repos.games, repos.bets, ids, logger.Named("bet")),
		team:        usecase.NewTeamService(repos.teams, teammatch.NewMatcher(teammatch.DefaultWeights()), ids, logger.Named("team")),
		ranking:     rankingSvc,
		dashboard:   usecase.NewDashboardService(repos.competitions, repos.games, repos.bets, rankingSvc),
		scoring:     scoringSvc,
		setting:     settingSvc,
		liveSync:    liveSyncSvc,
		orchestrator: usecase.NewJobOrchestratorService(
			repos.competitions,
			repos.games,
			liveSyncSvc,
			queue,
			repos.dispatches,
			usecase.JobOrchestratorConfig{
				LiveInterval:   cfg.Scheduler.LiveInterval,
				PreKickoffLead: cfg.Scheduler.PreKickoffLead,
				IdleInterval:   cfg.Scheduler.IdleInterval,
			},
			logger.Named("jobs"),
		),
	}, nil
}

func newTokenVerifier(cfg config.AnubisConfig, logger *logging.Logger) *anubis.Client {
	return anubis.NewClient(anubis.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.BaseURL,
		IntrospectPath: cfg.IntrospectPath,
		AdminKey:       cfg.AdminKey,
		CacheTTL:       cfg.CacheTTL,
		CircuitBreaker: cfg.CircuitBreaker,
		Logger:         logger,
	})
}

// NewLiveSync builds only what a one-shot live sync run needs. The returned func releases
// the storage connection.
func NewLiveSync(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.LiveSyncService, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, closeRepos, err
	}
	// A one-shot run never schedules follow-ups.
	cfg.Scheduler.Mode = config.SchedulerOff
	svc, err := buildServices(cfg, repos, logger)
	if err != nil {
		_ = closeRepos()
		return nil, func() error { return nil }, err
	}
	return svc.liveSync, closeRepos, nil
}
