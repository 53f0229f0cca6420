package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

type CreateGameInput struct {
	CompetitionID   string
	Matchday        int
	HomeTeamID      string
	AwayTeamID      string
	KickoffAt       time.Time
	ProviderMatchID int64
}

type SetResultInput struct {
	GameID    string
	HomeScore int
	AwayScore int
	Status    string
}

type GameScorer interface {
	ScoreGame(ctx context.Context, gameID string) (ScoreGameResult, error)
}

type GameService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	teamRepo        team.Repository
	scorer          GameScorer
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
}

func NewGameService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	teamRepo team.Repository,
	scorer GameScorer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		scorer:          scorer,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *GameService) List(ctx context.Context, filter game.ListFilter) ([]game.Game, error) {
	filter.CompetitionID = strings.TrimSpace(filter.CompetitionID)
	if filter.CompetitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if filter.Status != "" {
		filter.Status = game.NormalizeStatus(filter.Status)
		if !game.IsValidStatus(filter.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
		}
	}
	if filter.Matchday < 0 {
		return nil, fmt.Errorf("%w: matchday must be >= 0", ErrInvalidInput)
	}

	_, exists, err := s.competitionRepo.GetByID(ctx, filter.CompetitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, filter.CompetitionID)
	}

	items, err := s.gameRepo.ListByCompetition(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return items, nil
}

func (s *GameService) Get(ctx context.Context, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return item, nil
}

func (s *GameService) Create(ctx context.Context, input CreateGameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Create")
	defer span.End()

	comp, exists, err := s.competitionRepo.GetByID(ctx, strings.TrimSpace(input.CompetitionID))
	if err != nil {
		return game.Game{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: competition=%s", ErrNotFound, input.CompetitionID)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		item, ok, err := s.teamRepo.GetByID(ctx, strings.TrimSpace(teamID))
		if err != nil {
			return game.Game{}, fmt.Errorf("get team: %w", err)
		}
		if !ok {
			return game.Game{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
		if item.Sport != comp.Sport {
			return game.Game{}, fmt.Errorf("%w: team=%s plays %s, competition is %s", ErrInvalidInput, item.ID, item.Sport, comp.Sport)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	item := game.Game{
		ID:              id,
		CompetitionID:   comp.ID,
		Matchday:        input.Matchday,
		HomeTeamID:      strings.TrimSpace(input.HomeTeamID),
		AwayTeamID:      strings.TrimSpace(input.AwayTeamID),
		KickoffAt:       input.KickoffAt.UTC(),
		Status:          game.StatusScheduled,
		ProviderMatchID: input.ProviderMatchID,
	}
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.Create(ctx, item); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	return item, nil
}

// SetResult records a result by hand, e.g. when the feed has no coverage. A FINISHED
// result triggers scoring.
func (s *GameService) SetResult(ctx context.Context, input SetResultInput) (game.Game, ScoreGameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SetResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return game.Game{}, ScoreGameResult{}, fmt.Errorf("%w: score must be >= 0", ErrInvalidInput)
	}
	status := game.NormalizeStatus(input.Status)
	if strings.TrimSpace(input.Status) == "" {
		status = game.StatusFinished
	}
	if status != game.StatusFinished && status != game.StatusLive {
		return game.Game{}, ScoreGameResult{}, fmt.Errorf("%w: result status must be LIVE or FINISHED", ErrInvalidInput)
	}

	item, err := s.Get(ctx, input.GameID)
	if err != nil {
		return game.Game{}, ScoreGameResult{}, err
	}

	now := s.now().UTC()
	update := game.LiveUpdate{
		GameID:          item.ID,
		Status:          status,
		HomeScore:       game.IntPtr(input.HomeScore),
		AwayScore:       game.IntPtr(input.AwayScore),
		ProviderMatchID: item.ProviderMatchID,
		SyncedAt:        now,
		FinishedAt:      item.FinishedAt,
	}
	if status == game.StatusFinished && item.FinishedAt == nil {
		update.FinishedAt = &now
	}
	if err := s.gameRepo.UpdateLive(ctx, update); err != nil {
		return game.Game{}, ScoreGameResult{}, fmt.Errorf("update game result: %w", err)
	}

	item.Status = update.Status
	item.HomeScore = update.HomeScore
	item.AwayScore = update.AwayScore
	item.Minute = ""
	item.LastSyncedAt = &now
	item.FinishedAt = update.FinishedAt

	var scored ScoreGameResult
	if status == game.StatusFinished && s.scorer != nil {
		scored, err = s.scorer.ScoreGame(ctx, item.ID)
		if err != nil {
			return item, ScoreGameResult{}, fmt.Errorf("score game: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "game result set manually",
		"game_id", item.ID,
		"status", status,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"bets_scored", scored.Scored,
	)
	return item, scored, nil
}
