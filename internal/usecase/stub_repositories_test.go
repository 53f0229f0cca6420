package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
	"github.com/riskibarqy/prediction-league/internal/domain/setting"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
)

var errStub = errors.New("stub failure")

type stubCompetitionRepository struct {
	mu           sync.Mutex
	byID         map[string]competition.Competition
	participants map[string][]competition.Participant
}

func newStubCompetitionRepository(items ...competition.Competition) *stubCompetitionRepository {
	repo := &stubCompetitionRepository{
		byID:         make(map[string]competition.Competition, len(items)),
		participants: make(map[string][]competition.Participant),
	}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (s *stubCompetitionRepository) join(competitionID string, users ...string) {
	for _, userID := range users {
		_ = s.AddParticipant(context.Background(), competition.Participant{
			CompetitionID: competitionID,
			UserID:        userID,
			DisplayName:   userID,
		})
	}
}

func (s *stubCompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]competition.Competition, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCompetitionRepository) ListActive(ctx context.Context) ([]competition.Competition, error) {
	items, _ := s.List(ctx)
	out := make([]competition.Competition, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubCompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[competitionID]
	return item, ok, nil
}

func (s *stubCompetitionRepository) Upsert(_ context.Context, item competition.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[item.ID] = item
	return nil
}

func (s *stubCompetitionRepository) AddParticipant(_ context.Context, item competition.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants[item.CompetitionID] {
		if p.UserID == item.UserID {
			return nil
		}
	}
	s.participants[item.CompetitionID] = append(s.participants[item.CompetitionID], item)
	return nil
}

func (s *stubCompetitionRepository) ListParticipants(_ context.Context, competitionID string) ([]competition.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]competition.Participant(nil), s.participants[competitionID]...), nil
}

func (s *stubCompetitionRepository) IsParticipant(_ context.Context, competitionID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants[competitionID] {
		if p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type stubGameRepository struct {
	mu        sync.Mutex
	byID      map[string]game.Game
	updates   []game.LiveUpdate
	updateErr error
}

func newStubGameRepository(items ...game.Game) *stubGameRepository {
	repo := &stubGameRepository{byID: make(map[string]game.Game, len(items))}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (s *stubGameRepository) ListByCompetition(_ context.Context, filter game.ListFilter) ([]game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]game.Game, 0)
	for _, item := range s.byID {
		if item.CompetitionID != filter.CompetitionID {
			continue
		}
		if filter.Status != "" && game.NormalizeStatus(item.Status) != game.NormalizeStatus(filter.Status) {
			continue
		}
		if filter.Matchday > 0 && item.Matchday != filter.Matchday {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubGameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[gameID]
	return item, ok, nil
}

func (s *stubGameRepository) Create(_ context.Context, item game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[item.ID]; exists {
		return fmt.Errorf("game %s exists", item.ID)
	}
	s.byID[item.ID] = item
	return nil
}

func (s *stubGameRepository) UpdateLive(_ context.Context, update game.LiveUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	item, ok := s.byID[update.GameID]
	if !ok {
		return fmt.Errorf("game %s not found", update.GameID)
	}
	item.Status = update.Status
	item.HomeScore = update.HomeScore
	item.AwayScore = update.AwayScore
	item.Minute = update.Minute
	item.ProviderMatchID = update.ProviderMatchID
	syncedAt := update.SyncedAt
	item.LastSyncedAt = &syncedAt
	item.FinishedAt = update.FinishedAt
	s.byID[item.ID] = item
	s.updates = append(s.updates, update)
	return nil
}

func (s *stubGameRepository) ListSyncCandidates(_ context.Context, competitionID string, from, to time.Time) ([]game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]game.Game, 0)
	for _, item := range s.byID {
		if item.CompetitionID != competitionID || item.IsFinal() {
			continue
		}
		if item.KickoffAt.Before(from) || item.KickoffAt.After(to) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubGameRepository) get(gameID string) game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[gameID]
}

type stubTeamRepository struct {
	mu      sync.Mutex
	byID    map[string]team.Team
	updated []team.Team
}

func newStubTeamRepository(items ...team.Team) *stubTeamRepository {
	repo := &stubTeamRepository{byID: make(map[string]team.Team, len(items))}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (s *stubTeamRepository) List(_ context.Context, sport string) ([]team.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]team.Team, 0, len(s.byID))
	for _, item := range s.byID {
		if sport != "" && item.Sport != sport {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[teamID]
	return item, ok, nil
}

func (s *stubTeamRepository) GetByProviderID(_ context.Context, sport string, providerTeamID int64) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.byID {
		if item.Sport == sport && item.ProviderTeamID == providerTeamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) Create(_ context.Context, item team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[item.ID] = item
	return nil
}

func (s *stubTeamRepository) Update(_ context.Context, item team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[item.ID] = item
	s.updated = append(s.updated, item)
	return nil
}

func (s *stubTeamRepository) Delete(_ context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, teamID)
	return nil
}

type stubBetRepository struct {
	mu    sync.Mutex
	items []bet.Bet
}

func (s *stubBetRepository) Upsert(_ context.Context, item bet.Bet) (bet.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.UserID == item.UserID && existing.GameID == item.GameID {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			item.Points = nil
			item.ResultKind = ""
			s.items[i] = item
			return item, nil
		}
	}
	s.items = append(s.items, item)
	return item, nil
}

func (s *stubBetRepository) filter(keep func(bet.Bet) bool) []bet.Bet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bet.Bet, 0)
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *stubBetRepository) ListByGame(_ context.Context, gameID string) ([]bet.Bet, error) {
	return s.filter(func(b bet.Bet) bool { return b.GameID == gameID }), nil
}

func (s *stubBetRepository) ListByUserCompetition(_ context.Context, userID, competitionID string) ([]bet.Bet, error) {
	return s.filter(func(b bet.Bet) bool { return b.UserID == userID && b.CompetitionID == competitionID }), nil
}

func (s *stubBetRepository) ListByCompetition(_ context.Context, competitionID string) ([]bet.Bet, error) {
	return s.filter(func(b bet.Bet) bool { return b.CompetitionID == competitionID }), nil
}

func (s *stubBetRepository) UpdatePoints(_ context.Context, updates []bet.PointsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range updates {
		for i := range s.items {
			if s.items[i].ID == u.BetID {
				points := u.Points
				s.items[i].Points = &points
				s.items[i].ResultKind = u.ResultKind
				s.items[i].UpdatedAt = u.ScoredAt
			}
		}
	}
	return nil
}

type stubSettingRepository struct {
	mu    sync.Mutex
	items map[string]setting.Setting
}

func newStubSettingRepository() *stubSettingRepository {
	return &stubSettingRepository{items: make(map[string]setting.Setting)}
}

func (s *stubSettingRepository) List(_ context.Context) ([]setting.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]setting.Setting, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubSettingRepository) Get(_ context.Context, key string) (setting.Setting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	return item, ok, nil
}

func (s *stubSettingRepository) Upsert(_ context.Context, item setting.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Key] = item
	return nil
}

type stubRawRepository struct {
	mu    sync.Mutex
	saved []rawdata.Payload
}

func (s *stubRawRepository) Save(_ context.Context, item rawdata.Payload) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.saved {
		if existing.ContentHash == item.ContentHash {
			return false, nil
		}
	}
	s.saved = append(s.saved, item)
	return true, nil
}

func (s *stubRawRepository) Latest(_ context.Context, provider, competitionID string) (rawdata.Payload, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].Provider == provider && s.saved[i].CompetitionID == competitionID {
			return s.saved[i], true, nil
		}
	}
	return rawdata.Payload{}, false, nil
}

type stubDispatchRepository struct {
	mu     sync.Mutex
	events []jobscheduler.DispatchEvent
}

func (s *stubDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubDispatchRepository) ListRecent(_ context.Context, jobName string, limit int) ([]jobscheduler.DispatchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]jobscheduler.DispatchEvent, 0, len(s.events))
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].JobName == jobName {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func intPtr(v int) *int {
	return &v
}
