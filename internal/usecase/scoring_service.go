package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type ScoringRulesSource interface {
	ScoringRules(ctx context.Context) (scoring.Rules, error)
}

type ScoreGameResult struct {
	GameID  string `json:"game_id"`
	Scored  int    `json:"scored"`
	Skipped bool   `json:"skipped"`
}

type RescoreResult struct {
	CompetitionID string `json:"competition_id"`
	Games         int    `json:"games"`
	Bets          int    `json:"bets"`
}

type ScoringService struct {
	gameRepo   game.Repository
	betRepo    bet.Repository
	rules      ScoringRulesSource
	maxWorkers int
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(gameRepo game.Repository, betRepo bet.Repository, rules ScoringRulesSource, maxWorkers int, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 4
	}
	return &ScoringService{
		gameRepo:   gameRepo,
		betRepo:    betRepo,
		rules:      rules,
		maxWorkers: maxWorkers,
		logger:     logger,
		now:        time.Now,
	}
}

// ScoreGame grades every bet of a finished game. Games without a final score are skipped.
func (s *ScoringService) ScoreGame(ctx context.Context, gameID string) (ScoreGameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return ScoreGameResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return ScoreGameResult{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return ScoreGameResult{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	rules, err := s.currentRules(ctx)
	if err != nil {
		return ScoreGameResult{}, err
	}
	return s.scoreGame(ctx, item, rules)
}

// RescoreCompetition re-grades every finished game, e.g. after scoring settings change.
func (s *ScoringService) RescoreCompetition(ctx context.Context, competitionID string) (RescoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return RescoreResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByCompetition(ctx, game.ListFilter{
		CompetitionID: competitionID,
		Status:        game.StatusFinished,
	})
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list finished games: %w", err)
	}
	rules, err := s.currentRules(ctx)
	if err != nil {
		return RescoreResult{}, err
	}

	var gamesScored, betsScored atomic.Int64
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.maxWorkers)
	for _, item := range games {
		item := item
		p.Go(func(ctx context.Context) error {
			res, err := s.scoreGame(ctx, item, rules)
			if err != nil {
				return fmt.Errorf("game=%s: %w", item.ID, err)
			}
			if !res.Skipped {
				gamesScored.Add(1)
				betsScored.Add(int64(res.Scored))
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return RescoreResult{}, fmt.Errorf("rescore competition=%s: %w", competitionID, err)
	}

	result := RescoreResult{
		CompetitionID: competitionID,
		Games:         int(gamesScored.Load()),
		Bets:          int(betsScored.Load()),
	}
	s.logger.InfoContext(ctx, "competition rescored", "competition_id", competitionID, "games", result.Games, "bets", result.Bets)
	return result, nil
}

func (s *ScoringService) scoreGame(ctx context.Context, item game.Game, rules scoring.Rules) (ScoreGameResult, error) {
	result := ScoreGameResult{GameID: item.ID}
	if !item.IsFinal() || !item.HasScore() {
		result.Skipped = true
		return result, nil
	}

	bets, err := s.betRepo.ListByGame(ctx, item.ID)
	if err != nil {
		return ScoreGameResult{}, fmt.Errorf("list bets: %w", err)
	}
	if len(bets) == 0 {
		return result, nil
	}

	now := s.now().UTC()
	updates := make([]bet.PointsUpdate, 0, len(bets))
	for _, b := range bets {
		graded := scoring.Score(rules, b.HomeScore, b.AwayScore, *item.HomeScore, *item.AwayScore)
		updates = append(updates, bet.PointsUpdate{
			BetID:      b.ID,
			Points:     graded.Points,
			ResultKind: string(graded.Kind),
			ScoredAt:   now,
		})
	}
	if err := s.betRepo.UpdatePoints(ctx, updates); err != nil {
		return ScoreGameResult{}, fmt.Errorf("update bet points: %w", err)
	}

	result.Scored = len(updates)
	return result, nil
}

func (s *ScoringService) currentRules(ctx context.Context) (scoring.Rules, error) {
	if s.rules == nil {
		return scoring.DefaultRules(), nil
	}
	rules, err := s.rules.ScoringRules(ctx)
	if err != nil {
		return scoring.Rules{}, fmt.Errorf("load scoring rules: %w", err)
	}
	return rules, nil
}
