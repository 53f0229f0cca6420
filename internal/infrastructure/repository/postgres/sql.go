package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// nullableInt64 maps the zero value to NULL; provider ids use 0 for "unknown".
func nullableInt64(value int64) *int64 {
	if value <= 0 {
		return nil
	}
	return &value
}

func nullInt64ToInt64(value sql.NullInt64) int64 {
	if !value.Valid {
		return 0
	}
	return value.Int64
}

func nullInt32ToIntPtr(value sql.NullInt32) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int32)
	return &out
}

func nullTimeToPtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	out := value.Time.UTC()
	return &out
}

func nullableTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	out := value.UTC()
	return &out
}
