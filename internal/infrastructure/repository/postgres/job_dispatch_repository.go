package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}

	jobName := strings.TrimSpace(event.JobName)
	if jobName == "" {
		jobName = "unknown"
	}
	jobPath := strings.TrimSpace(event.JobPath)
	if jobPath == "" {
		jobPath = "/unknown"
	}
	competitionID := strings.TrimSpace(event.CompetitionID)

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	model := jobDispatchInsertModel{
		DispatchID:    dispatchID,
		JobName:       jobName,
		JobPath:       jobPath,
		CompetitionID: competitionID,
		Payload:       payloadJSON,
		Status:        string(event.Status),
		LastError:     optionalString(event.ErrorMessage),
	}

	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt = &occurredAt
		model.SentTraceID = optionalString(event.TraceID)
		model.SentSpanID = optionalString(event.SpanID)
		model.LastError = nil
	case jobscheduler.StatusCompleted:
		model.CompletedAt = &occurredAt
		model.CompletedTraceID = optionalString(event.TraceID)
		model.CompletedSpanID = optionalString(event.SpanID)
		model.LastError = nil
	case jobscheduler.StatusFailed:
		model.FailedAt = &occurredAt
		model.FailedTraceID = optionalString(event.TraceID)
		model.FailedSpanID = optionalString(event.SpanID)
	}

	query, args, err := qb.InsertModel("job_dispatches", model, `ON CONFLICT (dispatch_id) WHERE deleted_at IS NULL
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    job_path = EXCLUDED.job_path,
    competition_public_id = CASE
        WHEN EXCLUDED.competition_public_id <> '' THEN EXCLUDED.competition_public_id
        ELSE job_dispatches.competition_public_id
    END,
    payload = CASE
        WHEN EXCLUDED.payload = '{}'::jsonb THEN job_dispatches.payload
        ELSE EXCLUDED.payload
    END,
    status = EXCLUDED.status,
    sent_at = CASE
        WHEN EXCLUDED.status = 'sent' THEN EXCLUDED.sent_at
        ELSE COALESCE(job_dispatches.sent_at, EXCLUDED.sent_at)
    END,
    completed_at = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_at
        ELSE job_dispatches.completed_at
    END,
    failed_at = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_at
        WHEN EXCLUDED.status = 'completed' THEN NULL
        ELSE job_dispatches.failed_at
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    sent_trace_id = CASE
        WHEN EXCLUDED.status = 'sent' THEN EXCLUDED.sent_trace_id
        ELSE job_dispatches.sent_trace_id
    END,
    sent_span_id = CASE
        WHEN EXCLUDED.status = 'sent' THEN EXCLUDED.sent_span_id
        ELSE job_dispatches.sent_span_id
    END,
    completed_trace_id = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_trace_id
        ELSE job_dispatches.completed_trace_id
    END,
    completed_span_id = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_span_id
        ELSE job_dispatches.completed_span_id
    END,
    failed_trace_id = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_trace_id
        ELSE job_dispatches.failed_trace_id
    END,
    failed_span_id = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_span_id
        ELSE job_dispatches.failed_span_id
    END,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", dispatchID, event.Status, err)
	}

	return nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *JobDispatchRepository) ListRecent(ctx context.Context, jobName string, limit int) ([]jobscheduler.DispatchEvent, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if jobName = strings.TrimSpace(jobName); jobName != "" {
		conditions = append(conditions, qb.Eq("job_name", jobName))
	}

	builder := qb.Select("*").From("job_dispatches").
		Where(conditions...).
		OrderBy("updated_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select job dispatches query: %w", err)
	}

	var rows []jobDispatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job dispatches job=%s: %w", jobName, err)
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, dispatchEventFromRow(row))
	}

	return out, nil
}

// dispatchEventFromRow picks the timestamps and trace ids of the row's current status.
func dispatchEventFromRow(row jobDispatchTableModel) jobscheduler.DispatchEvent {
	event := jobscheduler.DispatchEvent{
		DispatchID:    row.DispatchID,
		JobName:       row.JobName,
		JobPath:       row.JobPath,
		CompetitionID: row.CompetitionID,
		Status:        jobscheduler.DispatchStatus(row.Status),
		Payload:       unmarshalPayload(row.Payload),
		ErrorMessage:  row.LastError.String,
		OccurredAt:    row.UpdatedAt.UTC(),
	}

	switch event.Status {
	case jobscheduler.StatusSent:
		event.OccurredAt = timeOr(row.SentAt, event.OccurredAt)
		event.TraceID, event.SpanID = row.SentTraceID.String, row.SentSpanID.String
	case jobscheduler.StatusCompleted:
		event.OccurredAt = timeOr(row.CompletedAt, event.OccurredAt)
		event.TraceID, event.SpanID = row.CompletedTraceID.String, row.CompletedSpanID.String
	case jobscheduler.StatusFailed:
		event.OccurredAt = timeOr(row.FailedAt, event.OccurredAt)
		event.TraceID, event.SpanID = row.FailedTraceID.String, row.FailedSpanID.String
	}

	return event
}

func unmarshalPayload(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	out := make(map[string]any)
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil
	}
	return out
}

func timeOr(value sql.NullTime, fallback time.Time) time.Time {
	if !value.Valid {
		return fallback
	}
	return value.Time.UTC()
}
