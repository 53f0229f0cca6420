package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type BetRepository struct {
	db *sqlx.DB
}

func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db}
}

func (r *BetRepository) Upsert(ctx context.Context, item bet.Bet) (bet.Bet, error) {
	now := time.Now().UTC()
	createdAt := item.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := item.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	model := betInsertModel{
		PublicID:            item.ID,
		UserID:              item.UserID,
		GamePublicID:        item.GameID,
		CompetitionPublicID: item.CompetitionID,
		HomeScore:           item.HomeScore,
		AwayScore:           item.AwayScore,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}

	query, args, err := qb.InsertModel("bets", model, `ON CONFLICT (user_id, game_public_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    points = NULL,
    result_kind = '',
    updated_at = EXCLUDED.updated_at
RETURNING *`)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("build upsert bet query: %w", err)
	}

	var row betTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return bet.Bet{}, fmt.Errorf("upsert bet user=%s game=%s: %w", item.UserID, item.GameID, err)
	}

	return betFromRow(row), nil
}

func (r *BetRepository) ListByGame(ctx context.Context, gameID string) ([]bet.Bet, error) {
	return r.list(ctx, "by game", qb.Eq("game_public_id", gameID))
}

func (r *BetRepository) ListByUserCompetition(ctx context.Context, userID, competitionID string) ([]bet.Bet, error) {
	return r.list(ctx, "by user competition",
		qb.Eq("user_id", userID),
		qb.Eq("competition_public_id", competitionID),
	)
}

func (r *BetRepository) ListByCompetition(ctx context.Context, competitionID string) ([]bet.Bet, error) {
	return r.list(ctx, "by competition", qb.Eq("competition_public_id", competitionID))
}

func (r *BetRepository) list(ctx context.Context, label string, conditions ...qb.Condition) ([]bet.Bet, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(conditions...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select bets %s query: %w", label, err)
	}

	var rows []betTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select bets %s: %w", label, err)
	}

	out := make([]bet.Bet, 0, len(rows))
	for _, row := range rows {
		out = append(out, betFromRow(row))
	}

	return out, nil
}

// UpdatePoints writes the whole batch in one transaction.
func (r *BetRepository) UpdatePoints(ctx context.Context, updates []bet.PointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update bet points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range updates {
		scoredAt := u.ScoredAt.UTC()
		if scoredAt.IsZero() {
			scoredAt = time.Now().UTC()
		}
		query, args, err := qb.Update("bets").
			Set("points", u.Points).
			Set("result_kind", u.ResultKind).
			Set("updated_at", scoredAt).
			Where(qb.Eq("public_id", u.BetID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update bet points query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update bet points id=%s: %w", u.BetID, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return fmt.Errorf("update bet points id=%s: not found", u.BetID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update bet points tx: %w", err)
	}

	return nil
}

func betFromRow(row betTableModel) bet.Bet {
	return bet.Bet{
		ID:            row.PublicID,
		UserID:        row.UserID,
		GameID:        row.GamePublicID,
		CompetitionID: row.CompetitionPublicID,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		Points:        nullInt32ToIntPtr(row.Points),
		ResultKind:    row.ResultKind,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}
