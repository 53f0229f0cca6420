package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	"github.com/riskibarqy/prediction-league/internal/domain/teammatch"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

const defaultSuggestLimit = 3

type TeamInput struct {
	Name           string
	ShortName      string
	Sport          string
	Country        string
	ProviderTeamID int64
	Aliases        []string
}

type TeamSuggestion struct {
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	Score      float64 `json:"score"`
	Method     string  `json:"method"`
	Distance   int     `json:"distance"`
	Confidence string  `json:"confidence"`
}

type TeamMatchResult struct {
	ExternalName string           `json:"external_name"`
	Normalized   string           `json:"normalized"`
	Suggestions  []TeamSuggestion `json:"suggestions"`
}

type TeamService struct {
	teamRepo team.Repository
	matcher  *teammatch.Matcher
	idGen    idgen.Generator
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, matcher *teammatch.Matcher, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if matcher == nil {
		matcher = teammatch.NewMatcher(teammatch.DefaultWeights())
	}
	return &TeamService{
		teamRepo: teamRepo,
		matcher:  matcher,
		idGen:    idGen,
		logger:   logger,
	}
}

func (s *TeamService) List(ctx context.Context, sport string) ([]team.Team, error) {
	sport = competition.NormalizeSport(sport)
	if sport != "" && !competition.IsValidSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	items, err := s.teamRepo.List(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	item := buildTeam(id, input)
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureUniqueName(ctx, item); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "name", item.Name, "sport", item.Sport)
	return item, nil
}

func (s *TeamService) Update(ctx context.Context, teamID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	current, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	item := buildTeam(current.ID, input)
	// a link learned by live sync survives edits that leave the provider id out
	if item.ProviderTeamID == 0 {
		item.ProviderTeamID = current.ProviderTeamID
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureUniqueName(ctx, item); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.logger.InfoContext(ctx, "team updated", "team_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID)
	return nil
}

// SuggestMatches ranks internal teams of a sport for each external name.
func (s *TeamService) SuggestMatches(ctx context.Context, sport string, names []string, limit int) ([]TeamMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SuggestMatches")
	defer span.End()

	sport = competition.NormalizeSport(sport)
	if !competition.IsValidSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one name is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	teams, err := s.teamRepo.List(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	candidates := TeamCandidates(teams)

	out := make([]TeamMatchResult, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		result := TeamMatchResult{
			ExternalName: name,
			Normalized:   teammatch.Normalize(name),
			Suggestions:  []TeamSuggestion{},
		}
		for _, m := range s.matcher.Rank(name, candidates, limit) {
			result.Suggestions = append(result.Suggestions, TeamSuggestion{
				TeamID:     m.Candidate.ID,
				TeamName:   m.Candidate.Name,
				Score:      m.Score,
				Method:     string(m.Method),
				Distance:   m.Distance,
				Confidence: string(m.Confidence),
			})
		}
		out = append(out, result)
	}
	return out, nil
}

func (s *TeamService) ensureUniqueName(ctx context.Context, item team.Team) error {
	existing, err := s.teamRepo.List(ctx, item.Sport)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	key := teammatch.Normalize(item.Name)
	for _, other := range existing {
		if other.ID == item.ID {
			continue
		}
		if teammatch.Normalize(other.Name) == key {
			return fmt.Errorf("%w: team name %q already used by team=%s", ErrConflict, item.Name, other.ID)
		}
	}
	return nil
}

// TeamCandidates converts teams into matcher candidates ordered by id.
func TeamCandidates(teams []team.Team) []teammatch.Candidate {
	out := make([]teammatch.Candidate, 0, len(teams))
	for _, t := range teams {
		out = append(out, teammatch.Candidate{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Aliases:   t.Aliases,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func buildTeam(id string, input TeamInput) team.Team {
	return team.Team{
		ID:             id,
		Name:           strings.TrimSpace(input.Name),
		ShortName:      strings.ToUpper(strings.TrimSpace(input.ShortName)),
		Sport:          competition.NormalizeSport(input.Sport),
		Country:        strings.TrimSpace(input.Country),
		ProviderTeamID: input.ProviderTeamID,
		Aliases:        team.CleanAliases(input.Aliases),
	}
}
