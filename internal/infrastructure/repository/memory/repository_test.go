package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
)

func TestSeedDataIsValid(t *testing.T) {
	t.Parallel()

	for _, item := range SeedCompetitions() {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid seed competition %s: %v", item.ID, err)
		}
	}
	teams := make(map[string]team.Team)
	for _, item := range SeedTeams() {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid seed team %s: %v", item.ID, err)
		}
		teams[item.ID] = item
	}
	for _, item := range SeedGames() {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid seed game %s: %v", item.ID, err)
		}
		if _, ok := teams[item.HomeTeamID]; !ok {
			t.Fatalf("seed game %s references unknown home team %s", item.ID, item.HomeTeamID)
		}
		if _, ok := teams[item.AwayTeamID]; !ok {
			t.Fatalf("seed game %s references unknown away team %s", item.ID, item.AwayTeamID)
		}
	}
}

func TestCompetitionRepository_ParticipantsAreIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions(), nil)

	joinedAt := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	first := competition.Participant{CompetitionID: CompetitionIDPremierLeague, UserID: "u1", DisplayName: "Alice", JoinedAt: joinedAt}
	if err := repo.AddParticipant(ctx, first); err != nil {
		t.Fatalf("add participant: %v", err)
	}
	again := first
	again.JoinedAt = joinedAt.Add(time.Hour)
	if err := repo.AddParticipant(ctx, again); err != nil {
		t.Fatalf("add participant again: %v", err)
	}

	rows, err := repo.ListParticipants(ctx, CompetitionIDPremierLeague)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected participant count: got=%d want=1", len(rows))
	}
	if !rows[0].JoinedAt.Equal(joinedAt) {
		t.Fatalf("unexpected joined at: got=%s want=%s", rows[0].JoinedAt, joinedAt)
	}

	ok, err := repo.IsParticipant(ctx, CompetitionIDPremierLeague, "u1")
	if err != nil || !ok {
		t.Fatalf("expected u1 to be participant: ok=%v err=%v", ok, err)
	}
	if err := repo.AddParticipant(ctx, competition.Participant{CompetitionID: "missing", UserID: "u1"}); err == nil {
		t.Fatalf("expected error joining unknown competition")
	}
}

func TestTeamRepository_SoftDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(SeedTeams())

	if err := repo.Delete(ctx, "fb-ars"); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if _, ok, _ := repo.GetByID(ctx, "fb-ars"); ok {
		t.Fatalf("deleted team should not be returned")
	}
	if _, ok, _ := repo.GetByProviderID(ctx, competition.SportFootball, 57); ok {
		t.Fatalf("deleted team should not resolve by provider id")
	}
	items, err := repo.List(ctx, competition.SportFootball)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	for _, item := range items {
		if item.ID == "fb-ars" {
			t.Fatalf("deleted team listed")
		}
	}
	if err := repo.Update(ctx, team.Team{ID: "fb-ars", Name: "Arsenal"}); err == nil {
		t.Fatalf("expected error updating deleted team")
	}
	if err := repo.Create(ctx, team.Team{ID: "fb-ars", Name: "Arsenal", Sport: competition.SportFootball}); err != nil {
		t.Fatalf("recreate deleted team: %v", err)
	}
}

func TestTeamRepository_GetByProviderIDScopedBySport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository([]team.Team{
		{ID: "fb-1", Name: "Leicester City", Sport: competition.SportFootball, ProviderTeamID: 338},
		{ID: "rg-1", Name: "Leicester Tigers", Sport: competition.SportRugby, ProviderTeamID: 338},
	})

	item, ok, err := repo.GetByProviderID(ctx, "Rugby", 338)
	if err != nil || !ok {
		t.Fatalf("expected rugby team: ok=%v err=%v", ok, err)
	}
	if item.ID != "rg-1" {
		t.Fatalf("unexpected team: got=%s want=rg-1", item.ID)
	}
	if _, ok, _ := repo.GetByProviderID(ctx, competition.SportFootball, 0); ok {
		t.Fatalf("provider id 0 must never match")
	}
}

func TestGameRepository_UpdateLiveAndCandidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGameRepository(SeedGames())
	syncedAt := time.Date(2026, 10, 24, 17, 10, 0, 0, time.UTC)

	err := repo.UpdateLive(ctx, game.LiveUpdate{
		GameID:          "gm-pl-001",
		Status:          "live",
		HomeScore:       game.IntPtr(1),
		AwayScore:       game.IntPtr(0),
		Minute:          "40",
		ProviderMatchID: 5001,
		SyncedAt:        syncedAt,
	})
	if err != nil {
		t.Fatalf("update live: %v", err)
	}

	item, _, _ := repo.GetByID(ctx, "gm-pl-001")
	if item.Status != game.StatusLive || item.ProviderMatchID != 5001 || item.Minute != "40" {
		t.Fatalf("unexpected game after update: %+v", item)
	}
	if item.LastSyncedAt == nil || !item.LastSyncedAt.Equal(syncedAt) {
		t.Fatalf("unexpected last synced at: got=%v want=%s", item.LastSyncedAt, syncedAt)
	}

	finishedAt := syncedAt.Add(time.Hour)
	if err := repo.UpdateLive(ctx, game.LiveUpdate{
		GameID:     "gm-pl-001",
		Status:     game.StatusFinished,
		HomeScore:  game.IntPtr(2),
		AwayScore:  game.IntPtr(0),
		SyncedAt:   finishedAt,
		FinishedAt: &finishedAt,
	}); err != nil {
		t.Fatalf("finish game: %v", err)
	}

	from := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
	candidates, err := repo.ListSyncCandidates(ctx, CompetitionIDPremierLeague, from, to)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "gm-pl-002" {
		t.Fatalf("unexpected candidates: got=%v want=[gm-pl-002]", candidates)
	}

	finished, _ := repo.ListByCompetition(ctx, game.ListFilter{CompetitionID: CompetitionIDPremierLeague, Status: "finished"})
	if len(finished) != 1 || finished[0].ProviderMatchID != 5001 {
		t.Fatalf("provider id should survive an update without one: %+v", finished)
	}

	if err := repo.UpdateLive(ctx, game.LiveUpdate{GameID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown game")
	}
}

func TestBetRepository_UpsertKeepsIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBetRepository(nil)
	created := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, bet.Bet{ID: "b1", UserID: "u1", GameID: "g1", CompetitionID: "c1", HomeScore: 1, AwayScore: 0, CreatedAt: created, UpdatedAt: created})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpdatePoints(ctx, []bet.PointsUpdate{{BetID: "b1", Points: 3, ResultKind: "exact"}}); err != nil {
		t.Fatalf("update points: %v", err)
	}

	second, err := repo.Upsert(ctx, bet.Bet{ID: "b2", UserID: "u1", GameID: "g1", CompetitionID: "c1", HomeScore: 2, AwayScore: 2, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour)})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(created) {
		t.Fatalf("overwrite should keep id and creation: got=%s/%s want=%s/%s", second.ID, second.CreatedAt, first.ID, created)
	}
	if second.Points != nil {
		t.Fatalf("overwritten bet should drop previous points")
	}

	items, _ := repo.ListByUserCompetition(ctx, "u1", "c1")
	if len(items) != 1 || items[0].HomeScore != 2 {
		t.Fatalf("unexpected bets: %+v", items)
	}

	if err := repo.UpdatePoints(ctx, []bet.PointsUpdate{{BetID: "b1", Points: 1}, {BetID: "nope", Points: 1}}); err == nil {
		t.Fatalf("expected error for unknown bet in batch")
	}
	items, _ = repo.ListByGame(ctx, "g1")
	if items[0].Points != nil {
		t.Fatalf("failed batch must not apply partially")
	}
}

func TestRawDataRepository_DedupAndLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRawDataRepository(2)

	save := func(body string) bool {
		t.Helper()
		ok, err := repo.Save(ctx, rawdata.Payload{Provider: "football-data", CompetitionID: "c1", Body: []byte(body)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		return ok
	}

	if !save(`{"a":1}`) {
		t.Fatalf("first payload should be stored")
	}
	if save(`{"a":1}`) {
		t.Fatalf("duplicate payload should be skipped")
	}
	save(`{"a":2}`)
	save(`{"a":3}`)

	latest, ok, _ := repo.Latest(ctx, "football-data", "c1")
	if !ok || string(latest.Body) != `{"a":3}` {
		t.Fatalf("unexpected latest payload: ok=%v body=%s", ok, latest.Body)
	}
	if !save(`{"a":1}`) {
		t.Fatalf("evicted payload should be storable again")
	}
}

func TestJobDispatchRepository_LatestEventWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewJobDispatchRepository()
	at := time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC)

	events := []jobscheduler.DispatchEvent{
		{DispatchID: "d1", JobName: "sync-live", Status: jobscheduler.StatusSent, Payload: map[string]any{"competition_id": "c1"}, OccurredAt: at},
		{DispatchID: "d1", JobName: "sync-live", Status: jobscheduler.StatusCompleted, OccurredAt: at.Add(time.Minute)},
		{DispatchID: "d2", JobName: "sync-live", Status: jobscheduler.StatusFailed, ErrorMessage: "boom", OccurredAt: at.Add(2 * time.Minute)},
		{DispatchID: "d3", JobName: "other", Status: jobscheduler.StatusSent, OccurredAt: at.Add(3 * time.Minute)},
	}
	for _, event := range events {
		if err := repo.UpsertEvent(ctx, event); err != nil {
			t.Fatalf("upsert event: %v", err)
		}
	}
	if err := repo.UpsertEvent(ctx, jobscheduler.DispatchEvent{}); err == nil {
		t.Fatalf("expected error for empty dispatch id")
	}

	items, err := repo.ListRecent(ctx, "sync-live", 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected dispatch count: got=%d want=2", len(items))
	}
	if items[0].DispatchID != "d2" || items[1].DispatchID != "d1" {
		t.Fatalf("unexpected order: got=%s,%s want=d2,d1", items[0].DispatchID, items[1].DispatchID)
	}
	if items[1].Status != jobscheduler.StatusCompleted || items[1].Payload["competition_id"] != "c1" {
		t.Fatalf("completion should keep original payload: %+v", items[1])
	}
}
