package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
)

func TestGameService_CreateChecksTeams(t *testing.T) {
	t.Parallel()

	competitions := newStubCompetitionRepository(competition.Competition{ID: "c-1", Name: "EPL", Sport: "football", IsActive: true})
	teams := newStubTeamRepository(
		team.Team{ID: "ars", Name: "Arsenal", Sport: "football"},
		team.Team{ID: "che", Name: "Chelsea", Sport: "football"},
		team.Team{ID: "fra", Name: "France", Sport: "rugby"},
	)
	games := newStubGameRepository()
	service := NewGameService(competitions, games, teams, nil, &sequenceIDGenerator{prefix: "game"}, nil)
	kickoff := time.Date(2026, time.August, 15, 14, 0, 0, 0, time.UTC)

	got, err := service.Create(context.Background(), CreateGameInput{CompetitionID: "c-1", Matchday: 1, HomeTeamID: "ars", AwayTeamID: "che", KickoffAt: kickoff})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if got.ID != "game-1" || got.Status != game.StatusScheduled {
		t.Fatalf("unexpected game: %+v", got)
	}

	_, err = service.Create(context.Background(), CreateGameInput{CompetitionID: "c-1", HomeTeamID: "ars", AwayTeamID: "fra", KickoffAt: kickoff})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error for cross-sport team: got=%v want=%v", err, ErrInvalidInput)
	}
	_, err = service.Create(context.Background(), CreateGameInput{CompetitionID: "c-1", HomeTeamID: "ars", AwayTeamID: "ars", KickoffAt: kickoff})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error for same team: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestGameService_SetResultScoresBets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 17, 0, 0, 0, time.UTC)
	games := newStubGameRepository(game.Game{ID: "g-1", CompetitionID: "c-1", HomeTeamID: "ars", AwayTeamID: "che", KickoffAt: now.Add(-2 * time.Hour), Status: game.StatusLive})
	bets := &stubBetRepository{items: []bet.Bet{{ID: "b-1", UserID: "u-1", GameID: "g-1", CompetitionID: "c-1", HomeScore: 1, AwayScore: 1}}}
	scorer := NewScoringService(games, bets, nil, 1, nil)
	service := NewGameService(newStubCompetitionRepository(), games, newStubTeamRepository(), scorer, &sequenceIDGenerator{prefix: "game"}, nil)
	service.now = fixedClock(now)

	item, scored, err := service.SetResult(context.Background(), SetResultInput{GameID: "g-1", HomeScore: 1, AwayScore: 1})
	if err != nil {
		t.Fatalf("set result: %v", err)
	}
	if item.Status != game.StatusFinished || item.FinishedAt == nil || !item.FinishedAt.Equal(now) {
		t.Fatalf("unexpected game: %+v", item)
	}
	if scored.Scored != 1 || bets.items[0].Points == nil || *bets.items[0].Points != 3 {
		t.Fatalf("unexpected scoring: result=%+v bet=%+v", scored, bets.items[0])
	}

	if _, _, err := service.SetResult(context.Background(), SetResultInput{GameID: "g-1", Status: "CANCELLED"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrInvalidInput)
	}
}
