package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
	"github.com/riskibarqy/prediction-league/internal/domain/setting"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	cacherepo "github.com/riskibarqy/prediction-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

type repositories struct {
	competitions competition.Repository
	teams        team.Repository
	games        game.Repository
	bets         bet.Repository
	settings     setting.Repository
	rawData      rawdata.Repository
	dispatches   jobscheduler.Repository
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := OpenPostgres(ctx, cfg.Storage, logger)
		if err != nil {
			return repositories{}, noClose, err
		}

		repos := repositories{
			competitions: postgres.NewCompetitionRepository(db),
			teams:        postgres.NewTeamRepository(db),
			games:        postgres.NewGameRepository(db),
			bets:         postgres.NewBetRepository(db),
			settings:     postgres.NewSettingRepository(db),
			rawData:      postgres.NewRawDataRepository(db),
			dispatches:   postgres.NewJobDispatchRepository(db),
		}
		if cfg.Cache.Enabled {
			store := basecache.NewStore(cfg.Cache.TTL)
			repos.competitions = cacherepo.NewCompetitionRepository(repos.competitions, store)
			repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
			logger.Info("repository cache enabled", "ttl", cfg.Cache.TTL.String())
		}
		return repos, db.Close, nil

	case config.StorageMemory, "":
		logger.Info("using in-memory storage with seed data")
		return repositories{
			competitions: memory.NewCompetitionRepository(memory.SeedCompetitions(), nil),
			teams:        memory.NewTeamRepository(memory.SeedTeams()),
			games:        memory.NewGameRepository(memory.SeedGames()),
			bets:         memory.NewBetRepository(nil),
			settings:     memory.NewSettingRepository(),
			rawData:      memory.NewRawDataRepository(cfg.Storage.RawPayloadMemoryEntries),
			dispatches:   memory.NewJobDispatchRepository(),
		}, noClose, nil

	default:
		return repositories{}, noClose, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
