package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	return r.list(ctx, qb.IsNull("deleted_at"))
}

func (r *CompetitionRepository) ListActive(ctx context.Context) ([]competition.Competition, error) {
	return r.list(ctx, qb.IsNull("deleted_at"), qb.Eq("is_active", true))
}

func (r *CompetitionRepository) list(ctx context.Context, conditions ...qb.Condition) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(conditions...).
		OrderBy("starts_at DESC NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build select competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition id=%s: %w", competitionID, err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, item competition.Competition) error {
	model := competitionInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Sport:        competition.NormalizeSport(item.Sport),
		Season:       item.Season,
		ProviderCode: item.ProviderCode,
		StartsAt:     nullableTime(item.StartsAt),
		EndsAt:       nullableTime(item.EndsAt),
		IsActive:     item.IsActive,
	}

	query, args, err := qb.InsertModel("competitions", model, `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    sport = EXCLUDED.sport,
    season = EXCLUDED.season,
    provider_code = EXCLUDED.provider_code,
    starts_at = EXCLUDED.starts_at,
    ends_at = EXCLUDED.ends_at,
    is_active = EXCLUDED.is_active,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert competition id=%s: %w", item.ID, err)
	}

	return nil
}

func (r *CompetitionRepository) AddParticipant(ctx context.Context, item competition.Participant) error {
	joinedAt := item.JoinedAt.UTC()
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}
	model := participantInsertModel{
		CompetitionPublicID: item.CompetitionID,
		UserID:              item.UserID,
		DisplayName:         item.DisplayName,
		JoinedAt:            joinedAt,
	}

	query, args, err := qb.InsertModel("competition_participants", model, `ON CONFLICT (competition_public_id, user_id)
DO UPDATE SET
    display_name = CASE
        WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name
        ELSE competition_participants.display_name
    END`)
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert participant competition=%s user=%s: %w", item.CompetitionID, item.UserID, err)
	}

	return nil
}

func (r *CompetitionRepository) ListParticipants(ctx context.Context, competitionID string) ([]competition.Participant, error) {
	query, args, err := qb.Select("*").From("competition_participants").
		Where(qb.Eq("competition_public_id", competitionID)).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants competition=%s: %w", competitionID, err)
	}

	out := make([]competition.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Participant{
			CompetitionID: row.CompetitionPublicID,
			UserID:        row.UserID,
			DisplayName:   row.DisplayName,
			JoinedAt:      row.JoinedAt.UTC(),
		})
	}

	return out, nil
}

func (r *CompetitionRepository) IsParticipant(ctx context.Context, competitionID, userID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("competition_participants").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count participant query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count participant competition=%s user=%s: %w", competitionID, userID, err)
	}

	return count > 0, nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	item := competition.Competition{
		ID:           row.PublicID,
		Name:         row.Name,
		Sport:        row.Sport,
		Season:       row.Season,
		ProviderCode: row.ProviderCode,
		IsActive:     row.IsActive,
	}
	if row.StartsAt.Valid {
		item.StartsAt = row.StartsAt.Time.UTC()
	}
	if row.EndsAt.Valid {
		item.EndsAt = row.EndsAt.Time.UTC()
	}
	return item
}
