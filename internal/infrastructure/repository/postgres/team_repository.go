package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context, sport string) ([]team.Team, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if sport = competition.NormalizeSport(sport); sport != "" {
		conditions = append(conditions, qb.Eq("sport", sport))
	}

	query, args, err := qb.Select("*").From("teams").
		Where(conditions...).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams sport=%s: %w", sport, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, "id="+teamID,
		qb.Eq("public_id", teamID),
		qb.IsNull("deleted_at"),
	)
}

func (r *TeamRepository) GetByProviderID(ctx context.Context, sport string, providerTeamID int64) (team.Team, bool, error) {
	if providerTeamID <= 0 {
		return team.Team{}, false, nil
	}
	return r.getOne(ctx, fmt.Sprintf("provider_id=%d", providerTeamID),
		qb.Eq("sport", competition.NormalizeSport(sport)),
		qb.Eq("provider_team_id", providerTeamID),
		qb.IsNull("deleted_at"),
	)
}

func (r *TeamRepository) getOne(ctx context.Context, label string, conditions ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team %s: %w", label, err)
	}

	return teamFromRow(row), true, nil
}

// Create revives a soft-deleted row with the same public id.
func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamToInsertModel(item), `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    sport = EXCLUDED.sport,
    country = EXCLUDED.country,
    provider_team_id = EXCLUDED.provider_team_id,
    aliases = EXCLUDED.aliases,
    updated_at = NOW(),
    deleted_at = NULL
WHERE teams.deleted_at IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert team id=%s: provider id %d already linked: %w", item.ID, item.ProviderTeamID, err)
		}
		return fmt.Errorf("insert team id=%s: %w", item.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("insert team id=%s: already exists", item.ID)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("short_name", item.ShortName).
		Set("sport", competition.NormalizeSport(item.Sport)).
		Set("country", item.Country).
		Set("provider_team_id", nullableInt64(item.ProviderTeamID)).
		Set("aliases", pq.StringArray(team.CleanAliases(item.Aliases))).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team id=%s: %w", item.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update team id=%s: not found", item.ID)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("soft delete team id=%s: %w", teamID, err)
	}

	return nil
}

func teamToInsertModel(item team.Team) teamInsertModel {
	return teamInsertModel{
		PublicID:       item.ID,
		Name:           item.Name,
		ShortName:      item.ShortName,
		Sport:          competition.NormalizeSport(item.Sport),
		Country:        item.Country,
		ProviderTeamID: nullableInt64(item.ProviderTeamID),
		Aliases:        pq.StringArray(team.CleanAliases(item.Aliases)),
	}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.PublicID,
		Name:           row.Name,
		ShortName:      row.ShortName,
		Sport:          row.Sport,
		Country:        row.Country,
		ProviderTeamID: nullInt64ToInt64(row.ProviderTeamID),
		Aliases:        []string(row.Aliases),
	}
}
