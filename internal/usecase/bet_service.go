package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

type PlaceBetInput struct {
	UserID    string
	GameID    string
	HomeScore int
	AwayScore int
}

type BetService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	betRepo         bet.Repository
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
}

func NewBetService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	betRepo bet.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *BetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BetService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		betRepo:         betRepo,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// PlaceBet stores or replaces the user's prediction for a game that has not kicked off.
func (s *BetService) PlaceBet(ctx context.Context, input PlaceBetInput) (bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.PlaceBet")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return bet.Bet{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	gameID := strings.TrimSpace(input.GameID)
	if gameID == "" {
		return bet.Bet{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return bet.Bet{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	now := s.now().UTC()
	candidate := bet.Bet{
		UserID:        userID,
		GameID:        item.ID,
		CompetitionID: item.CompetitionID,
		HomeScore:     input.HomeScore,
		AwayScore:     input.AwayScore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := candidate.Validate(); err != nil {
		return bet.Bet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	joined, err := s.competitionRepo.IsParticipant(ctx, item.CompetitionID, userID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("check participant: %w", err)
	}
	if !joined {
		return bet.Bet{}, fmt.Errorf("%w: user has not joined competition=%s", ErrForbidden, item.CompetitionID)
	}

	if item.HasStarted(now) {
		return bet.Bet{}, fmt.Errorf("%w: game=%s kicked off at %s", ErrBettingClosed, item.ID, item.KickoffAt.Format(time.RFC3339))
	}

	candidate.ID, err = s.idGen.NewID()
	if err != nil {
		return bet.Bet{}, fmt.Errorf("generate bet id: %w", err)
	}
	stored, err := s.betRepo.Upsert(ctx, candidate)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("upsert bet: %w", err)
	}

	s.logger.InfoContext(ctx, "bet placed",
		"bet_id", stored.ID,
		"user_id", userID,
		"game_id", item.ID,
		"prediction", fmt.Sprintf("%d-%d", stored.HomeScore, stored.AwayScore),
	)
	return stored, nil
}

func (s *BetService) ListMyBets(ctx context.Context, userID, competitionID string) ([]bet.Bet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	items, err := s.betRepo.ListByUserCompetition(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list user bets: %w", err)
	}
	return items, nil
}

// ListGameBets exposes every prediction for a game once it has kicked off at now.
// A zero now uses the service clock.
func (s *BetService) ListGameBets(ctx context.Context, gameID string, now time.Time) ([]bet.Bet, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	if now.IsZero() {
		now = s.now()
	}
	if !item.HasStarted(now.UTC()) {
		return nil, fmt.Errorf("%w: predictions are hidden until kickoff", ErrForbidden)
	}

	items, err := s.betRepo.ListByGame(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list game bets: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UserID < items[j].UserID
	})
	return items, nil
}
