package postgres

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

// Provider payloads are mostly repeated JSON keys, so a mid brotli level is plenty.
const rawPayloadCompressionLevel = 6

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

type rawPayloadInsertModel struct {
	PublicID            string    `db:"public_id"`
	Provider            string    `db:"provider"`
	Endpoint            string    `db:"endpoint"`
	CompetitionPublicID string    `db:"competition_public_id"`
	BodyBrotli          []byte    `db:"body_brotli"`
	BodySize            int       `db:"body_size"`
	ContentHash         string    `db:"content_hash"`
	FetchedAt           time.Time `db:"fetched_at"`
}

type rawPayloadTableModel struct {
	ID                  int64     `db:"id"`
	PublicID            string    `db:"public_id"`
	Provider            string    `db:"provider"`
	Endpoint            string    `db:"endpoint"`
	CompetitionPublicID string    `db:"competition_public_id"`
	BodyBrotli          []byte    `db:"body_brotli"`
	BodySize            int       `db:"body_size"`
	ContentHash         string    `db:"content_hash"`
	FetchedAt           time.Time `db:"fetched_at"`
}

func (r *RawDataRepository) Save(ctx context.Context, item rawdata.Payload) (bool, error) {
	hash := item.ContentHash
	if hash == "" {
		hash = rawdata.HashBody(item.Body)
	}
	compressed, err := compressPayload(item.Body)
	if err != nil {
		return false, fmt.Errorf("compress raw payload competition=%s: %w", item.CompetitionID, err)
	}
	fetchedAt := item.FetchedAt.UTC()
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	model := rawPayloadInsertModel{
		PublicID:            item.ID,
		Provider:            item.Provider,
		Endpoint:            item.Endpoint,
		CompetitionPublicID: item.CompetitionID,
		BodyBrotli:          compressed,
		BodySize:            len(item.Body),
		ContentHash:         hash,
		FetchedAt:           fetchedAt,
	}

	query, args, err := qb.InsertModel("raw_provider_payloads", model, `ON CONFLICT (content_hash) DO NOTHING`)
	if err != nil {
		return false, fmt.Errorf("build insert raw payload query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert raw payload competition=%s: %w", item.CompetitionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("raw payload rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *RawDataRepository) Latest(ctx context.Context, provider, competitionID string) (rawdata.Payload, bool, error) {
	query, args, err := qb.Select("*").From("raw_provider_payloads").
		Where(
			qb.Eq("provider", provider),
			qb.Eq("competition_public_id", competitionID),
		).
		OrderBy("fetched_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return rawdata.Payload{}, false, fmt.Errorf("build select latest raw payload query: %w", err)
	}

	var row rawPayloadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rawdata.Payload{}, false, nil
		}
		return rawdata.Payload{}, false, fmt.Errorf("get latest raw payload competition=%s: %w", competitionID, err)
	}

	body, err := decompressPayload(row.BodyBrotli)
	if err != nil {
		return rawdata.Payload{}, false, fmt.Errorf("decompress raw payload id=%s: %w", row.PublicID, err)
	}

	return rawdata.Payload{
		ID:            row.PublicID,
		Provider:      row.Provider,
		Endpoint:      row.Endpoint,
		CompetitionID: row.CompetitionPublicID,
		Body:          body,
		ContentHash:   row.ContentHash,
		FetchedAt:     row.FetchedAt.UTC(),
	}, true, nil
}

func compressPayload(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, rawPayloadCompressionLevel)
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressPayload(data []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
}
