package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
)

const (
	competitionKeyPrefix = "competition:"
	participantKeyPrefix = "participant:"
	teamKeyPrefix        = "team:"
)

type CompetitionRepository struct {
	next  competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	return r.loadList(ctx, competitionKeyPrefix+"list", r.next.List)
}

func (r *CompetitionRepository) ListActive(ctx context.Context) ([]competition.Competition, error) {
	return r.loadList(ctx, competitionKeyPrefix+"list:active", r.next.ListActive)
}

func (r *CompetitionRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]competition.Competition, error)) ([]competition.Competition, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]competition.Competition(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]competition.Competition)
	return append([]competition.Competition(nil), items...), nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	key := competitionKeyPrefix + "id:" + competitionID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return cachedCompetitionByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return competition.Competition{}, false, err
	}

	cached, _ := v.(cachedCompetitionByID)
	return cached.value, cached.exists, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, item competition.Competition) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, competitionKeyPrefix)
	return nil
}

func (r *CompetitionRepository) AddParticipant(ctx context.Context, item competition.Participant) error {
	if err := r.next.AddParticipant(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, participantKeyPrefix+item.CompetitionID+":")
	return nil
}

func (r *CompetitionRepository) ListParticipants(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	key := participantKeyPrefix + competitionID + ":list"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListParticipants(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return append([]competition.Participant(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]competition.Participant)
	return append([]competition.Participant(nil), items...), nil
}

func (r *CompetitionRepository) IsParticipant(ctx context.Context, competitionID, userID string) (bool, error) {
	key := participantKeyPrefix + competitionID + ":user:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.IsParticipant(ctx, competitionID, userID)
	})
	if err != nil {
		return false, err
	}

	joined, _ := v.(bool)
	return joined, nil
}

type cachedCompetitionByID struct {
	value  competition.Competition
	exists bool
}

// TeamRepository drops every cached team entry on any write; the matcher reads whole sport lists.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context, sport string) ([]team.Team, error) {
	key := teamKeyPrefix + "list:" + competition.NormalizeSport(sport)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, sport)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return cloneTeams(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, teamKeyPrefix+"id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) GetByProviderID(ctx context.Context, sport string, providerTeamID int64) (team.Team, bool, error) {
	key := teamKeyPrefix + "provider:" + competition.NormalizeSport(sport) + ":" + strconv.FormatInt(providerTeamID, 10)
	return r.getOne(ctx, key, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByProviderID(ctx, sport, providerTeamID)
	})
}

func (r *TeamRepository) getOne(ctx context.Context, key string, load func(context.Context) (team.Team, bool, error)) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	cached.value.Aliases = append([]string(nil), cached.value.Aliases...)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		item.Aliases = append([]string(nil), item.Aliases...)
		out = append(out, item)
	}
	return out
}
