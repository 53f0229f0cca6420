package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo data set into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM competitions WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedCompetitions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO competitions (public_id, name, sport, season, provider_code, starts_at, ends_at, is_active)
VALUES (:public_id, :name, :sport, :season, :provider_code, :starts_at, :ends_at, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":     c.ID,
			"name":          c.Name,
			"sport":         c.Sport,
			"season":        c.Season,
			"provider_code": c.ProviderCode,
			"starts_at":     nullableTime(c.StartsAt),
			"ends_at":       nullableTime(c.EndsAt),
			"is_active":     c.IsActive,
		})
		if err != nil {
			return fmt.Errorf("bind seed competition %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed competition %s: %w", c.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, short_name, sport, country, provider_team_id, aliases)
VALUES (:public_id, :name, :short_name, :sport, :country, :provider_team_id, :aliases)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        t.ID,
			"name":             t.Name,
			"short_name":       t.ShortName,
			"sport":            t.Sport,
			"country":          t.Country,
			"provider_team_id": nullableInt64(t.ProviderTeamID),
			"aliases":          pq.StringArray(t.Aliases),
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (public_id, competition_public_id, matchday, home_team_public_id, away_team_public_id, kickoff_at, status)
VALUES (:public_id, :competition_public_id, :matchday, :home_team_public_id, :away_team_public_id, :kickoff_at, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":             g.ID,
			"competition_public_id": g.CompetitionID,
			"matchday":              g.Matchday,
			"home_team_public_id":   g.HomeTeamID,
			"away_team_public_id":   g.AwayTeamID,
			"kickoff_at":            g.KickoffAt.UTC(),
			"status":                g.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed game %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
