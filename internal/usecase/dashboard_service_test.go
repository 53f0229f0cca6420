package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

func TestDashboardService_Get(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 4, 10, 0, 0, 0, time.UTC)
	competitions := newStubCompetitionRepository(competition.Competition{ID: "c-1", Name: "Premier League", Sport: competition.SportFootball, IsActive: true})
	competitions.join("c-1", "u-1", "u-2")

	items := []game.Game{
		// already kicked off but not yet picked up by the feed
		{ID: "g-late", CompetitionID: "c-1", HomeTeamID: "a", AwayTeamID: "b", KickoffAt: now.Add(-time.Minute), Status: game.StatusScheduled},
	}
	for i := 1; i <= 7; i++ {
		items = append(items, game.Game{
			ID:            fmt.Sprintf("g-%d", i),
			CompetitionID: "c-1",
			HomeTeamID:    "a",
			AwayTeamID:    "b",
			KickoffAt:     now.Add(time.Duration(8-i) * time.Hour),
			Status:        game.StatusScheduled,
		})
	}
	games := newStubGameRepository(items...)

	bets := &stubBetRepository{items: []bet.Bet{
		{ID: "b-open", UserID: "u-1", GameID: "g-7", CompetitionID: "c-1", HomeScore: 1, AwayScore: 0},
	}}
	for i := 0; i < 6; i++ {
		b := scoredBet(fmt.Sprintf("b-old-%d", i), "u-1", fmt.Sprintf("old-%d", i), 1, 0, 3, scoring.KindExact)
		b.UpdatedAt = now.Add(-time.Duration(i+1) * time.Hour)
		bets.items = append(bets.items, b)
	}

	ranking := NewRankingService(competitions, games, bets)
	service := NewDashboardService(competitions, games, bets, ranking)
	service.now = fixedClock(now)

	got, err := service.Get(context.Background(), "u-1", "c-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got.ParticipantCount != 2 {
		t.Fatalf("unexpected participant count: got=%d want=2", got.ParticipantCount)
	}
	if got.Me == nil || got.Me.Points != 18 || got.Me.Rank != 1 {
		t.Fatalf("unexpected me row: %+v", got.Me)
	}
	if len(got.Upcoming) != dashboardUpcomingLimit {
		t.Fatalf("unexpected upcoming count: got=%d want=%d", len(got.Upcoming), dashboardUpcomingLimit)
	}
	if got.Upcoming[0].Game.ID != "g-7" || got.Upcoming[0].MyBet == nil || got.Upcoming[0].MyBet.ID != "b-open" {
		t.Fatalf("unexpected first upcoming game: %+v", got.Upcoming[0])
	}
	for _, item := range got.Upcoming {
		if item.Game.ID == "g-late" {
			t.Fatalf("started game must not be listed as upcoming")
		}
	}
	if len(got.RecentBets) != dashboardRecentLimit || got.RecentBets[0].ID != "b-old-0" {
		t.Fatalf("unexpected recent bets: %+v", got.RecentBets)
	}
}

func TestDashboardService_Get_UnknownCompetition(t *testing.T) {
	t.Parallel()

	competitions := newStubCompetitionRepository()
	service := NewDashboardService(competitions, newStubGameRepository(), &stubBetRepository{}, NewRankingService(competitions, newStubGameRepository(), &stubBetRepository{}))

	if _, err := service.Get(context.Background(), "u-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrNotFound)
	}
	if _, err := service.Get(context.Background(), "", "c-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrUnauthorized)
	}
}
