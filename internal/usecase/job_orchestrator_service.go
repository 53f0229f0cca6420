package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

const (
	JobNameSyncLive = "sync-live"
	JobPathSyncLive = "/v1/internal/jobs/sync-live"

	// kickoffGrace keeps polling a game whose kickoff passed while the feed still says scheduled.
	kickoffGrace = 3 * time.Hour
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type JobOrchestratorConfig struct {
	LiveInterval   time.Duration
	PreKickoffLead time.Duration
	IdleInterval   time.Duration
}

type JobSyncInput struct {
	CompetitionID string
	DispatchID    string
}

type JobSyncResult struct {
	Mode                 string          `json:"mode"`
	CompetitionCount     int             `json:"competition_count"`
	LiveCompetitionCount int             `json:"live_competition_count"`
	QueuedCount          int             `json:"queued_count"`
	QueuedOperations     []string        `json:"queued_operations"`
	Report               *LiveSyncReport `json:"report,omitempty"`
}

type LiveSyncRunner interface {
	Run(ctx context.Context, input LiveSyncInput) (LiveSyncReport, error)
}

type JobOrchestratorService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	runner          LiveSyncRunner
	queue           JobQueue
	dispatchRepo    jobscheduler.Repository
	cfg             JobOrchestratorConfig
	logger          *logging.Logger
	now             func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	runner LiveSyncRunner,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = 2 * time.Minute
	}
	if cfg.PreKickoffLead <= 0 {
		cfg.PreKickoffLead = 10 * time.Minute
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = 6 * time.Hour
	}

	return &JobOrchestratorService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		runner:          runner,
		queue:           queue,
		dispatchRepo:    dispatchRepo,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// RunLiveSync runs one live sync pass and queues the next pass per competition.
func (s *JobOrchestratorService) RunLiveSync(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunLiveSync")
	defer span.End()

	if s.runner == nil {
		return JobSyncResult{}, fmt.Errorf("%w: live sync runner is not configured", ErrDependencyUnavailable)
	}
	report, err := s.runner.Run(ctx, LiveSyncInput{CompetitionID: input.CompetitionID})
	if err != nil {
		return JobSyncResult{}, fmt.Errorf("run live sync: %w", err)
	}

	competitions, err := s.pickCompetitions(ctx, input.CompetitionID)
	if err != nil {
		return JobSyncResult{}, err
	}

	now := s.now().UTC()
	result := JobSyncResult{
		Mode:             "live",
		CompetitionCount: len(competitions),
		QueuedOperations: make([]string, 0, len(competitions)),
		Report:           &report,
	}

	for _, item := range competitions {
		delay := s.cfg.IdleInterval
		if !report.Skipped {
			games, err := s.gameRepo.ListByCompetition(ctx, game.ListFilter{CompetitionID: item.ID})
			if err != nil {
				return JobSyncResult{}, fmt.Errorf("list games for competition=%s: %w", item.ID, err)
			}
			hasLive, nearestUpcoming := analyzeGames(games, now)
			if hasLive {
				result.LiveCompetitionCount++
			}
			delay = s.nextLiveDelay(now, hasLive, nearestUpcoming)
		}

		if err := s.enqueueLive(ctx, item.ID, delay, now); err != nil {
			return JobSyncResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, JobNameSyncLive+":"+item.ID)
	}

	return result, nil
}

// Bootstrap queues an immediate live sync per competition to start the chain.
func (s *JobOrchestratorService) Bootstrap(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	competitions, err := s.pickCompetitions(ctx, input.CompetitionID)
	if err != nil {
		return JobSyncResult{}, err
	}

	now := s.now().UTC()
	result := JobSyncResult{
		Mode:             "bootstrap",
		CompetitionCount: len(competitions),
		QueuedOperations: make([]string, 0, len(competitions)),
	}

	for _, item := range competitions {
		if err := s.enqueueLive(ctx, item.ID, 0, now); err != nil {
			return JobSyncResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, JobNameSyncLive+":"+item.ID)
	}

	return result, nil
}

// RecordCompletion stores how a queued job ended. Jobs without a dispatch id are ignored.
func (s *JobOrchestratorService) RecordCompletion(ctx context.Context, input JobSyncInput, runErr error) {
	event := jobscheduler.DispatchEvent{
		DispatchID:    strings.TrimSpace(input.DispatchID),
		JobName:       JobNameSyncLive,
		JobPath:       JobPathSyncLive,
		CompetitionID: strings.TrimSpace(input.CompetitionID),
		Status:        jobscheduler.StatusCompleted,
		OccurredAt:    s.now().UTC(),
	}
	if runErr != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = runErr.Error()
	}
	s.recordDispatchEvent(ctx, event)
}

func (s *JobOrchestratorService) ListDispatches(ctx context.Context, limit int) ([]jobscheduler.DispatchEvent, error) {
	if s.dispatchRepo == nil {
		return []jobscheduler.DispatchEvent{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := s.dispatchRepo.ListRecent(ctx, JobNameSyncLive, limit)
	if err != nil {
		return nil, fmt.Errorf("list job dispatches: %w", err)
	}
	return items, nil
}

func (s *JobOrchestratorService) pickCompetitions(ctx context.Context, competitionID string) ([]competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		items, err := s.competitionRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list competitions for jobs: %w", err)
		}
		out := make([]competition.Competition, 0, len(items))
		for _, item := range items {
			if item.Syncable() {
				out = append(out, item)
			}
		}
		return out, nil
	}

	item, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition for jobs: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	if !item.Syncable() {
		return []competition.Competition{}, nil
	}
	return []competition.Competition{item}, nil
}

func (s *JobOrchestratorService) enqueueLive(ctx context.Context, competitionID string, delay time.Duration, now time.Time) error {
	dedupID := dedupKey(JobNameSyncLive, competitionID, now.Add(delay), s.cfg.LiveInterval)
	payload := map[string]any{
		"competition_id": competitionID,
		"dispatch_id":    dedupID,
	}
	event := jobscheduler.DispatchEvent{
		DispatchID:    dedupID,
		JobName:       JobNameSyncLive,
		JobPath:       JobPathSyncLive,
		CompetitionID: competitionID,
		Status:        jobscheduler.StatusSent,
		Payload:       payload,
		OccurredAt:    now.UTC(),
	}
	if err := s.queue.Enqueue(ctx, JobPathSyncLive, payload, delay, dedupID); err != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		s.recordDispatchEvent(ctx, event)
		return fmt.Errorf("enqueue %s competition=%s: %w", JobNameSyncLive, competitionID, err)
	}
	s.recordDispatchEvent(ctx, event)
	s.logger.DebugContext(ctx, "live sync queued", "competition_id", competitionID, "delay", delay.String(), "dispatch_id", dedupID)
	return nil
}

func dedupKey(prefix, competitionID string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	competitionID = sanitizeDedupSegment(competitionID)
	return prefix + "-" + competitionID + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobOrchestratorService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}

func analyzeGames(items []game.Game, now time.Time) (bool, *time.Time) {
	var nearestUpcoming *time.Time
	hasLive := false
	for _, item := range items {
		status := game.NormalizeStatus(item.Status)
		if status == game.StatusLive {
			hasLive = true
			continue
		}
		if status != game.StatusScheduled || item.KickoffAt.IsZero() {
			continue
		}
		if !item.KickoffAt.After(now) {
			if now.Sub(item.KickoffAt) < kickoffGrace {
				hasLive = true
			}
			continue
		}
		if nearestUpcoming == nil || item.KickoffAt.Before(*nearestUpcoming) {
			next := item.KickoffAt
			nearestUpcoming = &next
		}
	}

	return hasLive, nearestUpcoming
}

func (s *JobOrchestratorService) nextLiveDelay(now time.Time, hasLive bool, nearestUpcoming *time.Time) time.Duration {
	minDelay := time.Minute
	if hasLive {
		return maxDuration(s.cfg.LiveInterval, minDelay)
	}

	if nearestUpcoming != nil {
		liveAt := nearestUpcoming.Add(-s.cfg.PreKickoffLead)
		delay := liveAt.Sub(now)
		if delay <= 0 {
			return maxDuration(s.cfg.LiveInterval, minDelay)
		}
		return maxDuration(delay, minDelay)
	}

	return maxDuration(s.cfg.IdleInterval, 6*time.Hour)
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
