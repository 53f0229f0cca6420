package postgres

import (
	"database/sql"
	"time"
)

type betTableModel struct {
	ID                  int64         `db:"id"`
	PublicID            string        `db:"public_id"`
	UserID              string        `db:"user_id"`
	GamePublicID        string        `db:"game_public_id"`
	CompetitionPublicID string        `db:"competition_public_id"`
	HomeScore           int           `db:"home_score"`
	AwayScore           int           `db:"away_score"`
	Points              sql.NullInt32 `db:"points"`
	ResultKind          string        `db:"result_kind"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
}

type betInsertModel struct {
	PublicID            string    `db:"public_id"`
	UserID              string    `db:"user_id"`
	GamePublicID        string    `db:"game_public_id"`
	CompetitionPublicID string    `db:"competition_public_id"`
	HomeScore           int       `db:"home_score"`
	AwayScore           int       `db:"away_score"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}
