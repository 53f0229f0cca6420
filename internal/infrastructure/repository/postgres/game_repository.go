package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListByCompetition(ctx context.Context, filter game.ListFilter) ([]game.Game, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.CompetitionID != "" {
		conditions = append(conditions, qb.Eq("competition_public_id", filter.CompetitionID))
	}
	if strings.TrimSpace(filter.Status) != "" {
		conditions = append(conditions, qb.Eq("status", game.NormalizeStatus(filter.Status)))
	}
	if filter.Matchday > 0 {
		conditions = append(conditions, qb.Eq("matchday", filter.Matchday))
	}

	return r.list(ctx, "by competition", conditions...)
}

func (r *GameRepository) ListSyncCandidates(ctx context.Context, competitionID string, from, to time.Time) ([]game.Game, error) {
	return r.list(ctx, "sync candidates",
		qb.Eq("competition_public_id", competitionID),
		qb.Ne("status", game.StatusFinished),
		qb.Gte("kickoff_at", from.UTC()),
		qb.Lte("kickoff_at", to.UTC()),
		qb.IsNull("deleted_at"),
	)
}

func (r *GameRepository) list(ctx context.Context, label string, conditions ...qb.Condition) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(conditions...).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games %s query: %w", label, err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games %s: %w", label, err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}

	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game id=%s: %w", gameID, err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) error {
	model := gameInsertModel{
		PublicID:            item.ID,
		CompetitionPublicID: item.CompetitionID,
		Matchday:            item.Matchday,
		HomeTeamPublicID:    item.HomeTeamID,
		AwayTeamPublicID:    item.AwayTeamID,
		KickoffAt:           item.KickoffAt.UTC(),
		Status:              game.NormalizeStatus(item.Status),
		HomeScore:           item.HomeScore,
		AwayScore:           item.AwayScore,
		Minute:              item.Minute,
		ProviderMatchID:     nullableInt64(item.ProviderMatchID),
		LastSyncedAt:        item.LastSyncedAt,
		FinishedAt:          item.FinishedAt,
	}

	query, args, err := qb.InsertModel("games", model, "")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert game id=%s: already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert game id=%s: %w", item.ID, err)
	}

	return nil
}

// UpdateLive never clears a known provider match id or finish time.
func (r *GameRepository) UpdateLive(ctx context.Context, update game.LiveUpdate) error {
	builder := qb.Update("games").
		Set("status", game.NormalizeStatus(update.Status)).
		Set("home_score", update.HomeScore).
		Set("away_score", update.AwayScore).
		Set("minute", update.Minute).
		SetExpr("updated_at", "NOW()")
	if update.ProviderMatchID > 0 {
		builder = builder.Set("provider_match_id", update.ProviderMatchID)
	}
	if !update.SyncedAt.IsZero() {
		builder = builder.Set("last_synced_at", update.SyncedAt.UTC())
	}
	if update.FinishedAt != nil {
		builder = builder.Set("finished_at", update.FinishedAt.UTC())
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", update.GameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update live game query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update live game id=%s: %w", update.GameID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update live game id=%s: not found", update.GameID)
	}

	return nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:              row.PublicID,
		CompetitionID:   row.CompetitionPublicID,
		Matchday:        row.Matchday,
		HomeTeamID:      row.HomeTeamPublicID,
		AwayTeamID:      row.AwayTeamPublicID,
		KickoffAt:       row.KickoffAt.UTC(),
		Status:          row.Status,
		HomeScore:       nullInt32ToIntPtr(row.HomeScore),
		AwayScore:       nullInt32ToIntPtr(row.AwayScore),
		Minute:          row.Minute,
		ProviderMatchID: nullInt64ToInt64(row.ProviderMatchID),
		LastSyncedAt:    nullTimeToPtr(row.LastSyncedAt),
		FinishedAt:      nullTimeToPtr(row.FinishedAt),
	}
}
