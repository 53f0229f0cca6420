package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/setting"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type SettingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

type settingTableModel struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedBy string    `db:"updated_by"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *SettingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	query, args, err := qb.Select("*").From("app_settings").OrderBy("key").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select settings query: %w", err)
	}

	var rows []settingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select settings: %w", err)
	}

	out := make([]setting.Setting, 0, len(rows))
	for _, row := range rows {
		out = append(out, setting.Setting(row))
	}

	return out, nil
}

func (r *SettingRepository) Get(ctx context.Context, key string) (setting.Setting, bool, error) {
	query, args, err := qb.Select("*").From("app_settings").
		Where(qb.Eq("key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return setting.Setting{}, false, fmt.Errorf("build select setting query: %w", err)
	}

	var row settingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return setting.Setting{}, false, nil
		}
		return setting.Setting{}, false, fmt.Errorf("get setting key=%s: %w", key, err)
	}

	return setting.Setting(row), true, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, item setting.Setting) error {
	updatedAt := item.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	model := settingTableModel{
		Key:       item.Key,
		Value:     item.Value,
		UpdatedBy: item.UpdatedBy,
		UpdatedAt: updatedAt,
	}

	query, args, err := qb.InsertModel("app_settings", model, `ON CONFLICT (key)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert setting query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert setting key=%s: %w", item.Key, err)
	}

	return nil
}
