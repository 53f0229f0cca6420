package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

type CreateCompetitionInput struct {
	ID           string
	Name         string
	Sport        string
	Season       string
	ProviderCode string
	StartsAt     time.Time
	EndsAt       time.Time
	IsActive     bool
}

type CompetitionService struct {
	competitionRepo competition.Repository
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
}

func NewCompetitionService(competitionRepo competition.Repository, idGen idgen.Generator, logger *logging.Logger) *CompetitionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionService{
		competitionRepo: competitionRepo,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *CompetitionService) List(ctx context.Context) ([]competition.Competition, error) {
	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) Get(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	item, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	return item, nil
}

func (s *CompetitionService) Create(ctx context.Context, input CreateCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Create")
	defer span.End()

	id := strings.TrimSpace(input.ID)
	if id == "" {
		generated, err := s.idGen.NewID()
		if err != nil {
			return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
		}
		id = generated
	}

	item := competition.Competition{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Sport:        competition.NormalizeSport(input.Sport),
		Season:       strings.TrimSpace(input.Season),
		ProviderCode: strings.ToUpper(strings.TrimSpace(input.ProviderCode)),
		StartsAt:     input.StartsAt.UTC(),
		EndsAt:       input.EndsAt.UTC(),
		IsActive:     input.IsActive,
	}
	if err := item.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.competitionRepo.GetByID(ctx, item.ID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s already exists", ErrConflict, item.ID)
	}
	if err := s.competitionRepo.Upsert(ctx, item); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}

	s.logger.InfoContext(ctx, "competition created", "competition_id", item.ID, "sport", item.Sport)
	return item, nil
}

// Join adds the user to the competition. Joining twice is a no-op.
func (s *CompetitionService) Join(ctx context.Context, competitionID, userID, displayName string) (competition.Participant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return competition.Participant{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, err := s.Get(ctx, competitionID)
	if err != nil {
		return competition.Participant{}, err
	}
	if !item.IsActive {
		return competition.Participant{}, fmt.Errorf("%w: competition=%s is not open", ErrForbidden, item.ID)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = userID
	}
	participant := competition.Participant{
		CompetitionID: item.ID,
		UserID:        userID,
		DisplayName:   displayName,
		JoinedAt:      s.now().UTC(),
	}
	if err := s.competitionRepo.AddParticipant(ctx, participant); err != nil {
		return competition.Participant{}, fmt.Errorf("add participant: %w", err)
	}
	return participant, nil
}

func (s *CompetitionService) ListParticipants(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	item, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	participants, err := s.competitionRepo.ListParticipants(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}
