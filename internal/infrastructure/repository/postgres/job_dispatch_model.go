package postgres

import (
	"database/sql"
	"time"
)

type jobDispatchInsertModel struct {
	DispatchID       string     `db:"dispatch_id"`
	JobName          string     `db:"job_name"`
	JobPath          string     `db:"job_path"`
	CompetitionID    string     `db:"competition_public_id"`
	Payload          string     `db:"payload"`
	Status           string     `db:"status"`
	SentAt           *time.Time `db:"sent_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	FailedAt         *time.Time `db:"failed_at"`
	LastError        *string    `db:"last_error"`
	SentTraceID      *string    `db:"sent_trace_id"`
	SentSpanID       *string    `db:"sent_span_id"`
	CompletedTraceID *string    `db:"completed_trace_id"`
	CompletedSpanID  *string    `db:"completed_span_id"`
	FailedTraceID    *string    `db:"failed_trace_id"`
	FailedSpanID     *string    `db:"failed_span_id"`
}

type jobDispatchTableModel struct {
	ID               int64          `db:"id"`
	DispatchID       string         `db:"dispatch_id"`
	JobName          string         `db:"job_name"`
	JobPath          string         `db:"job_path"`
	CompetitionID    string         `db:"competition_public_id"`
	Payload          string         `db:"payload"`
	Status           string         `db:"status"`
	SentAt           sql.NullTime   `db:"sent_at"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
	FailedAt         sql.NullTime   `db:"failed_at"`
	LastError        sql.NullString `db:"last_error"`
	SentTraceID      sql.NullString `db:"sent_trace_id"`
	SentSpanID       sql.NullString `db:"sent_span_id"`
	CompletedTraceID sql.NullString `db:"completed_trace_id"`
	CompletedSpanID  sql.NullString `db:"completed_span_id"`
	FailedTraceID    sql.NullString `db:"failed_trace_id"`
	FailedSpanID     sql.NullString `db:"failed_span_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}
