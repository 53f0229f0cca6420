package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	ShortName      string         `db:"short_name"`
	Sport          string         `db:"sport"`
	Country        string         `db:"country"`
	ProviderTeamID sql.NullInt64  `db:"provider_team_id"`
	Aliases        pq.StringArray `db:"aliases"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	ShortName      string         `db:"short_name"`
	Sport          string         `db:"sport"`
	Country        string         `db:"country"`
	ProviderTeamID *int64         `db:"provider_team_id"`
	Aliases        pq.StringArray `db:"aliases"`
}
