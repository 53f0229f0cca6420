package postgres

import (
	"database/sql"
	"time"
)

type competitionTableModel struct {
	ID           int64        `db:"id"`
	PublicID     string       `db:"public_id"`
	Name         string       `db:"name"`
	Sport        string       `db:"sport"`
	Season       string       `db:"season"`
	ProviderCode string       `db:"provider_code"`
	StartsAt     sql.NullTime `db:"starts_at"`
	EndsAt       sql.NullTime `db:"ends_at"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    *time.Time   `db:"deleted_at"`
}

type competitionInsertModel struct {
	PublicID     string     `db:"public_id"`
	Name         string     `db:"name"`
	Sport        string     `db:"sport"`
	Season       string     `db:"season"`
	ProviderCode string     `db:"provider_code"`
	StartsAt     *time.Time `db:"starts_at"`
	EndsAt       *time.Time `db:"ends_at"`
	IsActive     bool       `db:"is_active"`
}

type participantTableModel struct {
	ID                  int64     `db:"id"`
	CompetitionPublicID string    `db:"competition_public_id"`
	UserID              string    `db:"user_id"`
	DisplayName         string    `db:"display_name"`
	JoinedAt            time.Time `db:"joined_at"`
}

type participantInsertModel struct {
	CompetitionPublicID string    `db:"competition_public_id"`
	UserID              string    `db:"user_id"`
	DisplayName         string    `db:"display_name"`
	JoinedAt            time.Time `db:"joined_at"`
}
