package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

// OpenPostgres opens a traced sqlx pool and checks it with a ping.
func OpenPostgres(ctx context.Context, cfg config.StorageConfig, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := PostgresDSN(cfg)
	dbName := dbNameFromURL(dsn)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db=%s: %w", dbName, err)
	}
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	logger.Info("postgres connected", "db_name", dbName, "max_open_conns", cfg.MaxOpenConns)
	return db, nil
}

// PostgresDSN returns DB_URL with lib/pq's binary_parameters=yes appended when the flag
// is on and the URL does not already set it. Transaction-mode poolers like pgbouncer need
// it because unnamed statements are then sent in a single round trip.
func PostgresDSN(cfg config.StorageConfig) string {
	raw := strings.TrimSpace(cfg.DBURL)
	if !cfg.BinaryParameters {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("binary_parameters") != "" {
		return raw
	}
	query.Set("binary_parameters", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL handles both URL and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}
	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}

func formatQueryForTrace(query string) string {
	normalized := queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
