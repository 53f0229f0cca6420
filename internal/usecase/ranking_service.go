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
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

type LeaderboardRow struct {
	Rank            int    `json:"rank"`
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Points          int    `json:"points"`
	ExactScores     int    `json:"exact_scores"`
	CorrectOutcomes int    `json:"correct_outcomes"`
	BetsPlaced      int    `json:"bets_placed"`
	BetsScored      int    `json:"bets_scored"`
}

type Leaderboard struct {
	CompetitionID string           `json:"competition_id"`
	Rows          []LeaderboardRow `json:"rows"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

type ProgressionSeries struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      []int  `json:"points"`
	Ranks       []int  `json:"ranks"`
}

// Progression is cumulative points per matchday, aligned with Matchdays.
type Progression struct {
	CompetitionID string              `json:"competition_id"`
	Matchdays     []int               `json:"matchdays"`
	Series        []ProgressionSeries `json:"series"`
}

type PerformanceRow struct {
	GameID        string    `json:"game_id"`
	Matchday      int       `json:"matchday"`
	KickoffAt     time.Time `json:"kickoff_at"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	FinalHome     int       `json:"final_home"`
	FinalAway     int       `json:"final_away"`
	PredictedHome *int      `json:"predicted_home,omitempty"`
	PredictedAway *int      `json:"predicted_away,omitempty"`
	Points        int       `json:"points"`
	ResultKind    string    `json:"result_kind"`
}

type Performance struct {
	CompetitionID   string           `json:"competition_id"`
	UserID          string           `json:"user_id"`
	Rows            []PerformanceRow `json:"rows"`
	Points          int              `json:"points"`
	ExactScores     int              `json:"exact_scores"`
	CorrectOutcomes int              `json:"correct_outcomes"`
	Misses          int              `json:"misses"`
	NoBet           int              `json:"no_bet"`
}

const resultKindNoBet = "no_bet"

type RankingService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	betRepo         bet.Repository
	now             func() time.Time
}

func NewRankingService(competitionRepo competition.Repository, gameRepo game.Repository, betRepo bet.Repository) *RankingService {
	return &RankingService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		betRepo:         betRepo,
		now:             time.Now,
	}
}

func (s *RankingService) Leaderboard(ctx context.Context, competitionID string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Leaderboard")
	defer span.End()

	comp, participants, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return Leaderboard{}, err
	}
	bets, err := s.betRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list competition bets: %w", err)
	}

	rows := make(map[string]*LeaderboardRow, len(participants))
	for _, p := range participants {
		rows[p.UserID] = &LeaderboardRow{UserID: p.UserID, DisplayName: p.DisplayName}
	}
	for _, b := range bets {
		row := rowFor(rows, b.UserID)
		row.BetsPlaced++
		if b.Points == nil {
			continue
		}
		row.BetsScored++
		row.Points += *b.Points
		switch scoring.Kind(b.ResultKind) {
		case scoring.KindExact:
			row.ExactScores++
		case scoring.KindOutcome:
			row.CorrectOutcomes++
		}
	}

	out := make([]LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	assignRanks(out)

	return Leaderboard{
		CompetitionID: comp.ID,
		Rows:          out,
		GeneratedAt:   s.now().UTC(),
	}, nil
}

func (s *RankingService) Progression(ctx context.Context, competitionID string) (Progression, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Progression")
	defer span.End()

	comp, participants, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return Progression{}, err
	}
	games, err := s.gameRepo.ListByCompetition(ctx, game.ListFilter{CompetitionID: comp.ID, Status: game.StatusFinished})
	if err != nil {
		return Progression{}, fmt.Errorf("list finished games: %w", err)
	}
	bets, err := s.betRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return Progression{}, fmt.Errorf("list competition bets: %w", err)
	}

	matchdayByGame := make(map[string]int, len(games))
	matchdaySet := make(map[int]struct{})
	for _, g := range games {
		matchdayByGame[g.ID] = g.Matchday
		matchdaySet[g.Matchday] = struct{}{}
	}
	matchdays := make([]int, 0, len(matchdaySet))
	for md := range matchdaySet {
		matchdays = append(matchdays, md)
	}
	sort.Ints(matchdays)

	// per user, per matchday: points, exact, outcome gained on that matchday
	type gain struct{ points, exact, outcome int }
	gains := make(map[string]map[int]gain)
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.UserID] = p.DisplayName
		gains[p.UserID] = make(map[int]gain)
	}
	for _, b := range bets {
		md, ok := matchdayByGame[b.GameID]
		if !ok || b.Points == nil {
			continue
		}
		if _, ok := gains[b.UserID]; !ok {
			gains[b.UserID] = make(map[int]gain)
			names[b.UserID] = b.UserID
		}
		g := gains[b.UserID][md]
		g.points += *b.Points
		switch scoring.Kind(b.ResultKind) {
		case scoring.KindExact:
			g.exact++
		case scoring.KindOutcome:
			g.outcome++
		}
		gains[b.UserID][md] = g
	}

	userIDs := make([]string, 0, len(gains))
	for userID := range gains {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	series := make([]ProgressionSeries, len(userIDs))
	totals := make([]LeaderboardRow, len(userIDs))
	for i, userID := range userIDs {
		series[i] = ProgressionSeries{
			UserID:      userID,
			DisplayName: names[userID],
			Points:      make([]int, len(matchdays)),
			Ranks:       make([]int, len(matchdays)),
		}
		totals[i] = LeaderboardRow{UserID: userID, DisplayName: names[userID]}
	}

	for step, md := range matchdays {
		for i, userID := range userIDs {
			g := gains[userID][md]
			totals[i].Points += g.points
			totals[i].ExactScores += g.exact
			totals[i].CorrectOutcomes += g.outcome
			series[i].Points[step] = totals[i].Points
		}
		snapshot := append([]LeaderboardRow(nil), totals...)
		assignRanks(snapshot)
		rankByUser := make(map[string]int, len(snapshot))
		for _, row := range snapshot {
			rankByUser[row.UserID] = row.Rank
		}
		for i, userID := range userIDs {
			series[i].Ranks[step] = rankByUser[userID]
		}
	}

	return Progression{
		CompetitionID: comp.ID,
		Matchdays:     matchdays,
		Series:        series,
	}, nil
}

func (s *RankingService) Performance(ctx context.Context, competitionID, userID string) (Performance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Performance")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Performance{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	comp, _, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return Performance{}, err
	}
	games, err := s.gameRepo.ListByCompetition(ctx, game.ListFilter{CompetitionID: comp.ID, Status: game.StatusFinished})
	if err != nil {
		return Performance{}, fmt.Errorf("list finished games: %w", err)
	}
	bets, err := s.betRepo.ListByUserCompetition(ctx, userID, comp.ID)
	if err != nil {
		return Performance{}, fmt.Errorf("list user bets: %w", err)
	}
	betByGame := make(map[string]bet.Bet, len(bets))
	for _, b := range bets {
		betByGame[b.GameID] = b
	}

	sort.Slice(games, func(i, j int) bool {
		if !games[i].KickoffAt.Equal(games[j].KickoffAt) {
			return games[i].KickoffAt.Before(games[j].KickoffAt)
		}
		return games[i].ID < games[j].ID
	})

	out := Performance{
		CompetitionID: comp.ID,
		UserID:        userID,
		Rows:          make([]PerformanceRow, 0, len(games)),
	}
	for _, g := range games {
		if !g.HasScore() {
			continue
		}
		row := PerformanceRow{
			GameID:     g.ID,
			Matchday:   g.Matchday,
			KickoffAt:  g.KickoffAt,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			FinalHome:  *g.HomeScore,
			FinalAway:  *g.AwayScore,
			ResultKind: resultKindNoBet,
		}
		b, ok := betByGame[g.ID]
		if !ok {
			out.NoBet++
			out.Rows = append(out.Rows, row)
			continue
		}
		row.PredictedHome = game.IntPtr(b.HomeScore)
		row.PredictedAway = game.IntPtr(b.AwayScore)
		if b.Points != nil {
			row.Points = *b.Points
			row.ResultKind = b.ResultKind
		} else {
			row.ResultKind = "pending"
		}
		out.Points += row.Points
		switch scoring.Kind(row.ResultKind) {
		case scoring.KindExact:
			out.ExactScores++
		case scoring.KindOutcome:
			out.CorrectOutcomes++
		case scoring.KindMiss:
			out.Misses++
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (s *RankingService) loadCompetition(ctx context.Context, competitionID string) (competition.Competition, []competition.Participant, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	participants, err := s.competitionRepo.ListParticipants(ctx, comp.ID)
	if err != nil {
		return competition.Competition{}, nil, fmt.Errorf("list participants: %w", err)
	}
	return comp, participants, nil
}

func rowFor(rows map[string]*LeaderboardRow, userID string) *LeaderboardRow {
	row, ok := rows[userID]
	if !ok {
		row = &LeaderboardRow{UserID: userID, DisplayName: userID}
		rows[userID] = row
	}
	return row
}

// assignRanks sorts rows and applies standard competition ranking (1, 2, 2, 4).
func assignRanks(rows []LeaderboardRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ExactScores != b.ExactScores {
			return a.ExactScores > b.ExactScores
		}
		if a.CorrectOutcomes != b.CorrectOutcomes {
			return a.CorrectOutcomes > b.CorrectOutcomes
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.UserID < b.UserID
	})

	for i := range rows {
		if i > 0 && sameStanding(rows[i-1], rows[i]) {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}

func sameStanding(a, b LeaderboardRow) bool {
	return a.Points == b.Points && a.ExactScores == b.ExactScores && a.CorrectOutcomes == b.CorrectOutcomes
}
