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
	"github.com/sourcegraph/conc/pool"
)

const (
	dashboardUpcomingLimit = 5
	dashboardRecentLimit   = 5
)

type DashboardGame struct {
	Game  game.Game `json:"game"`
	MyBet *bet.Bet  `json:"my_bet,omitempty"`
}

type Dashboard struct {
	CompetitionID    string          `json:"competition_id"`
	CompetitionName  string          `json:"competition_name"`
	Me               *LeaderboardRow `json:"me,omitempty"`
	ParticipantCount int             `json:"participant_count"`
	Upcoming         []DashboardGame `json:"upcoming"`
	RecentBets       []bet.Bet       `json:"recent_bets"`
}

type dashboardRankingProvider interface {
	Leaderboard(ctx context.Context, competitionID string) (Leaderboard, error)
}

type DashboardService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	betRepo         bet.Repository
	ranking         dashboardRankingProvider
	maxWorkers      int
	now             func() time.Time
}

func NewDashboardService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	betRepo bet.Repository,
	ranking dashboardRankingProvider,
) *DashboardService {
	return &DashboardService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		betRepo:         betRepo,
		ranking:         ranking,
		maxWorkers:      3,
		now:             time.Now,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID, competitionID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return Dashboard{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	var (
		board Leaderboard
		games []game.Game
		bets  []bet.Bet
	)
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.maxWorkers)
	p.Go(func(ctx context.Context) error {
		var err error
		board, err = s.ranking.Leaderboard(ctx, comp.ID)
		if err != nil {
			return fmt.Errorf("load leaderboard: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		games, err = s.gameRepo.ListByCompetition(ctx, game.ListFilter{CompetitionID: comp.ID, Status: game.StatusScheduled})
		if err != nil {
			return fmt.Errorf("list scheduled games: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		bets, err = s.betRepo.ListByUserCompetition(ctx, userID, comp.ID)
		if err != nil {
			return fmt.Errorf("list user bets: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		CompetitionID:    comp.ID,
		CompetitionName:  comp.Name,
		ParticipantCount: len(board.Rows),
		Upcoming:         []DashboardGame{},
		RecentBets:       []bet.Bet{},
	}
	for i := range board.Rows {
		if board.Rows[i].UserID == userID {
			row := board.Rows[i]
			out.Me = &row
			break
		}
	}

	betByGame := make(map[string]bet.Bet, len(bets))
	for _, b := range bets {
		betByGame[b.GameID] = b
	}

	now := s.now().UTC()
	sort.Slice(games, func(i, j int) bool {
		if !games[i].KickoffAt.Equal(games[j].KickoffAt) {
			return games[i].KickoffAt.Before(games[j].KickoffAt)
		}
		return games[i].ID < games[j].ID
	})
	for _, g := range games {
		if g.HasStarted(now) {
			continue
		}
		item := DashboardGame{Game: g}
		if b, ok := betByGame[g.ID]; ok {
			b := b
			item.MyBet = &b
		}
		out.Upcoming = append(out.Upcoming, item)
		if len(out.Upcoming) == dashboardUpcomingLimit {
			break
		}
	}

	scored := make([]bet.Bet, 0, len(bets))
	for _, b := range bets {
		if b.IsScored() {
			scored = append(scored, b)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if !scored[i].UpdatedAt.Equal(scored[j].UpdatedAt) {
			return scored[i].UpdatedAt.After(scored[j].UpdatedAt)
		}
		return scored[i].ID < scored[j].ID
	})
	if len(scored) > dashboardRecentLimit {
		scored = scored[:dashboardRecentLimit]
	}
	out.RecentBets = append(out.RecentBets, scored...)

	return out, nil
}
