package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID                  int64         `db:"id"`
	PublicID            string        `db:"public_id"`
	CompetitionPublicID string        `db:"competition_public_id"`
	Matchday            int           `db:"matchday"`
	HomeTeamPublicID    string        `db:"home_team_public_id"`
	AwayTeamPublicID    string        `db:"away_team_public_id"`
	KickoffAt           time.Time     `db:"kickoff_at"`
	Status              string        `db:"status"`
	HomeScore           sql.NullInt32 `db:"home_score"`
	AwayScore           sql.NullInt32 `db:"away_score"`
	Minute              string        `db:"minute"`
	ProviderMatchID     sql.NullInt64 `db:"provider_match_id"`
	LastSyncedAt        sql.NullTime  `db:"last_synced_at"`
	FinishedAt          sql.NullTime  `db:"finished_at"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
	DeletedAt           *time.Time    `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID            string     `db:"public_id"`
	CompetitionPublicID string     `db:"competition_public_id"`
	Matchday            int        `db:"matchday"`
	HomeTeamPublicID    string     `db:"home_team_public_id"`
	AwayTeamPublicID    string     `db:"away_team_public_id"`
	KickoffAt           time.Time  `db:"kickoff_at"`
	Status              string     `db:"status"`
	HomeScore           *int       `db:"home_score"`
	AwayScore           *int       `db:"away_score"`
	Minute              string     `db:"minute"`
	ProviderMatchID     *int64     `db:"provider_match_id"`
	LastSyncedAt        *time.Time `db:"last_synced_at"`
	FinishedAt          *time.Time `db:"finished_at"`
}
