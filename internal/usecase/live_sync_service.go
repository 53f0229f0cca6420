package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	"github.com/riskibarqy/prediction-league/internal/domain/teammatch"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

const (
	defaultLiveSyncWindow    = 36 * time.Hour
	defaultKickoffTolerance  = 12 * time.Hour
	defaultLiveSyncWorkers   = 4
	defaultLiveSyncProvider  = "football-data"
	skipReasonDisabled       = "live sync disabled by settings"
	skipReasonInactive       = "competition is inactive"
	skipReasonNoProviderCode = "competition has no provider code"
	skipReasonNoCandidates   = "no games inside sync window"
)

// ExternalMatch is one match as reported by the score feed.
type ExternalMatch struct {
	ID              int64
	CompetitionCode string
	Matchday        int
	HomeTeamID      int64
	HomeTeamName    string
	AwayTeamID      int64
	AwayTeamName    string
	KickoffAt       time.Time
	Status          string
	Minute          string
	HomeScore       *int
	AwayScore       *int
	LastUpdated     time.Time
}

type ExternalMatchBatch struct {
	Matches  []ExternalMatch
	Endpoint string
	Raw      []byte
}

type LiveScoreProvider interface {
	FetchMatches(ctx context.Context, competitionCode string, from, to time.Time) (ExternalMatchBatch, error)
}

type LiveSyncSettings interface {
	LiveSyncOptions(ctx context.Context) (LiveSyncOptions, error)
}

type LiveSyncConfig struct {
	Window           time.Duration
	KickoffTolerance time.Duration
	MaxWorkers       int
	ArchivePayloads  bool
	ProviderName     string
}

func (c LiveSyncConfig) normalize() LiveSyncConfig {
	if c.Window <= 0 {
		c.Window = defaultLiveSyncWindow
	}
	if c.KickoffTolerance <= 0 {
		c.KickoffTolerance = defaultKickoffTolerance
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = defaultLiveSyncWorkers
	}
	if strings.TrimSpace(c.ProviderName) == "" {
		c.ProviderName = defaultLiveSyncProvider
	}
	return c
}

type LiveSyncInput struct {
	CompetitionID string
	DryRun        bool
	// Now overrides the clock, mainly for replays.
	Now time.Time
}

type CompetitionSyncReport struct {
	CompetitionID  string   `json:"competition_id"`
	Skipped        bool     `json:"skipped,omitempty"`
	SkipReason     string   `json:"skip_reason,omitempty"`
	Fetched        int      `json:"fetched"`
	Candidates     int      `json:"candidates"`
	Matched        int      `json:"matched"`
	Updated        int      `json:"updated"`
	Unchanged      int      `json:"unchanged"`
	Finished       int      `json:"finished"`
	AutoFinished   int      `json:"auto_finished"`
	Stale          int      `json:"stale"`
	Scored         int      `json:"scored"`
	TeamsLinked    int      `json:"teams_linked"`
	UnmatchedGames []string `json:"unmatched_games,omitempty"`
	UnmatchedTeams []string `json:"unmatched_teams,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
	DurationMs     int64    `json:"duration_ms"`
}

type LiveSyncTotals struct {
	Competitions int `json:"competitions"`
	Failed       int `json:"failed"`
	Fetched      int `json:"fetched"`
	Candidates   int `json:"candidates"`
	Matched      int `json:"matched"`
	Updated      int `json:"updated"`
	Unchanged    int `json:"unchanged"`
	Finished     int `json:"finished"`
	AutoFinished int `json:"auto_finished"`
	Stale        int `json:"stale"`
	Scored       int `json:"scored"`
}

type LiveSyncReport struct {
	StartedAt    time.Time               `json:"started_at"`
	FinishedAt   time.Time               `json:"finished_at"`
	DryRun       bool                    `json:"dry_run"`
	Skipped      bool                    `json:"skipped,omitempty"`
	SkipReason   string                  `json:"skip_reason,omitempty"`
	Competitions []CompetitionSyncReport `json:"competitions"`
	Totals       LiveSyncTotals          `json:"totals"`
}

// MapProviderStatus translates a feed status into a local one. Unknown values keep current.
func MapProviderStatus(external, current string) string {
	switch strings.ToUpper(strings.TrimSpace(external)) {
	case "SCHEDULED", "TIMED":
		return game.StatusScheduled
	case "IN_PLAY", "PAUSED", "LIVE":
		return game.StatusLive
	case "FINISHED", "AWARDED":
		return game.StatusFinished
	case "POSTPONED", "SUSPENDED":
		return game.StatusPostponed
	case "CANCELLED", "CANCELED":
		return game.StatusCancelled
	default:
		return game.NormalizeStatus(current)
	}
}

type LiveSyncService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	teamRepo        team.Repository
	rawRepo         rawdata.Repository
	provider        LiveScoreProvider
	settings        LiveSyncSettings
	scorer          GameScorer
	matcher         *teammatch.Matcher
	idGen           idgen.Generator
	cfg             LiveSyncConfig
	logger          *logging.Logger
	now             func() time.Time
}

func NewLiveSyncService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	teamRepo team.Repository,
	rawRepo rawdata.Repository,
	provider LiveScoreProvider,
	settings LiveSyncSettings,
	scorer GameScorer,
	idGen idgen.Generator,
	cfg LiveSyncConfig,
	logger *logging.Logger,
) *LiveSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveSyncService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		rawRepo:         rawRepo,
		provider:        provider,
		settings:        settings,
		scorer:          scorer,
		matcher:         teammatch.NewMatcher(teammatch.DefaultWeights()),
		idGen:           idGen,
		cfg:             cfg.normalize(),
		logger:          logger.Named("livesync"),
		now:             time.Now,
	}
}

// Run reconciles local games with the score feed for one or all active competitions.
func (s *LiveSyncService) Run(ctx context.Context, input LiveSyncInput) (LiveSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveSyncService.Run")
	defer span.End()

	if s.provider == nil {
		return LiveSyncReport{}, fmt.Errorf("%w: live score provider is not configured", ErrDependencyUnavailable)
	}

	now := input.Now
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()
	report := LiveSyncReport{
		StartedAt:    s.now().UTC(),
		DryRun:       input.DryRun,
		Competitions: []CompetitionSyncReport{},
	}

	opts, err := s.options(ctx)
	if err != nil {
		return LiveSyncReport{}, err
	}
	if !opts.Enabled {
		report.Skipped = true
		report.SkipReason = skipReasonDisabled
		report.FinishedAt = s.now().UTC()
		s.logger.InfoContext(ctx, "live sync skipped", "reason", report.SkipReason)
		return report, nil
	}

	competitions, err := s.targetCompetitions(ctx, input.CompetitionID)
	if err != nil {
		return LiveSyncReport{}, err
	}

	syncable := make([]competition.Competition, 0, len(competitions))
	for _, comp := range competitions {
		switch {
		case !comp.IsActive:
			report.Competitions = append(report.Competitions, CompetitionSyncReport{CompetitionID: comp.ID, Skipped: true, SkipReason: skipReasonInactive})
		case !comp.Syncable():
			report.Competitions = append(report.Competitions, CompetitionSyncReport{CompetitionID: comp.ID, Skipped: true, SkipReason: skipReasonNoProviderCode})
		default:
			syncable = append(syncable, comp)
		}
	}

	if len(syncable) > 0 {
		rows, err := s.runCompetitions(ctx, syncable, opts, now, input.DryRun)
		if err != nil {
			return LiveSyncReport{}, err
		}
		report.Competitions = append(report.Competitions, rows...)
	}

	sort.SliceStable(report.Competitions, func(i, j int) bool {
		return report.Competitions[i].CompetitionID < report.Competitions[j].CompetitionID
	})
	report.Totals = summarizeSync(report.Competitions)
	report.FinishedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "live sync finished",
		"dry_run", input.DryRun,
		"competitions", report.Totals.Competitions,
		"failed", report.Totals.Failed,
		"updated", report.Totals.Updated,
		"finished", report.Totals.Finished,
		"auto_finished", report.Totals.AutoFinished,
		"scored", report.Totals.Scored,
	)
	return report, nil
}

func (s *LiveSyncService) options(ctx context.Context) (LiveSyncOptions, error) {
	if s.settings == nil {
		defaults := DefaultSettingDefaults()
		return LiveSyncOptions{
			Enabled: defaults.LiveSyncEnabled,
			AutoFinish: map[string]time.Duration{
				competition.SportFootball: defaults.AutoFinishFootball,
				competition.SportRugby:    defaults.AutoFinishRugby,
			},
			MatchThreshold: defaults.MatchThreshold,
		}, nil
	}
	opts, err := s.settings.LiveSyncOptions(ctx)
	if err != nil {
		return LiveSyncOptions{}, fmt.Errorf("load live sync options: %w", err)
	}
	return opts, nil
}

func (s *LiveSyncService) targetCompetitions(ctx context.Context, competitionID string) ([]competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		items, err := s.competitionRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active competitions: %w", err)
		}
		return items, nil
	}

	item, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	return []competition.Competition{item}, nil
}

func (s *LiveSyncService) runCompetitions(
	ctx context.Context,
	items []competition.Competition,
	opts LiveSyncOptions,
	now time.Time,
	dryRun bool,
) ([]CompetitionSyncReport, error) {
	workerCount := s.cfg.MaxWorkers
	if workerCount > len(items) {
		workerCount = len(items)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan CompetitionSyncReport, len(items))
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, comp := range items {
		comp := comp
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.syncCompetition(ctx, comp, opts, now, dryRun)
			row.DurationMs = time.Since(start).Milliseconds()
			if row.Error != "" {
				failed.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit competition to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]CompetitionSyncReport, 0, len(items))
	for row := range results {
		out = append(out, row)
	}
	if n := failed.Load(); n > 0 {
		s.logger.WarnContext(ctx, "live sync had failing competitions", "failed", int(n), "total", len(items))
	}
	return out, nil
}

func (s *LiveSyncService) syncCompetition(
	ctx context.Context,
	comp competition.Competition,
	opts LiveSyncOptions,
	now time.Time,
	dryRun bool,
) CompetitionSyncReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveSyncService.syncCompetition")
	defer span.End()

	report := CompetitionSyncReport{CompetitionID: comp.ID}
	logger := s.logger.With("competition_id", comp.ID, "provider_code", comp.ProviderCode)

	from, to := now.Add(-s.cfg.Window), now.Add(s.cfg.Window)
	candidates, err := s.gameRepo.ListSyncCandidates(ctx, comp.ID, from, to)
	if err != nil {
		report.Error = fmt.Sprintf("list sync candidates: %v", err)
		logger.ErrorContext(ctx, "live sync candidates failed", "error", err)
		return report
	}
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		report.Skipped = true
		report.SkipReason = skipReasonNoCandidates
		return report
	}

	batch, err := s.provider.FetchMatches(ctx, comp.ProviderCode, from, to)
	if err != nil {
		report.Error = fmt.Sprintf("fetch matches: %v", err)
		logger.ErrorContext(ctx, "live sync fetch failed", "error", err)
		return report
	}
	report.Fetched = len(batch.Matches)

	if !dryRun {
		s.archive(ctx, comp, batch, now, &report)
	}

	teams, err := s.teamRepo.List(ctx, comp.Sport)
	if err != nil {
		report.Error = fmt.Sprintf("list teams: %v", err)
		logger.ErrorContext(ctx, "live sync teams failed", "error", err)
		return report
	}
	resolver := newTeamResolver(s.teamRepo, s.matcher, comp.Sport, teams, opts.MatchThreshold, dryRun)

	pairing := newMatchPairing(batch.Matches)
	for i := range pairing.matches {
		ext := &pairing.matches[i]
		ext.home = resolver.resolve(ctx, ext.HomeTeamID, ext.HomeTeamName, &report)
		ext.away = resolver.resolve(ctx, ext.AwayTeamID, ext.AwayTeamName, &report)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].KickoffAt.Equal(candidates[j].KickoffAt) {
			return candidates[i].KickoffAt.Before(candidates[j].KickoffAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	autoFinishAfter := opts.AutoFinishAfter(comp.Sport)
	for _, local := range candidates {
		ext := pairing.find(local, s.cfg.KickoffTolerance)
		if ext == nil {
			report.UnmatchedGames = append(report.UnmatchedGames, local.ID)
		} else {
			report.Matched++
		}

		update, changed, auto, stale := planUpdate(local, ext, now, autoFinishAfter)
		if stale {
			report.Stale++
			logger.WarnContext(ctx, "game cannot finish without a score", "game_id", local.ID, "kickoff_at", local.KickoffAt)
		}
		if !changed {
			report.Unchanged++
			continue
		}

		finishing := update.Status == game.StatusFinished && !local.IsFinal()
		if !dryRun {
			if err := s.gameRepo.UpdateLive(ctx, update); err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("update game=%s: %v", local.ID, err))
				logger.ErrorContext(ctx, "live game update failed", "game_id", local.ID, "error", err)
				continue
			}
		}
		report.Updated++
		if finishing {
			report.Finished++
			if auto {
				report.AutoFinished++
			}
			if !dryRun {
				s.scoreFinished(ctx, local.ID, &report, logger)
			}
		}
	}

	sort.Strings(report.UnmatchedTeams)
	logger.InfoContext(ctx, "live sync competition done",
		"candidates", report.Candidates,
		"fetched", report.Fetched,
		"matched", report.Matched,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"finished", report.Finished,
		"auto_finished", report.AutoFinished,
		"stale", report.Stale,
	)
	return report
}

func (s *LiveSyncService) scoreFinished(ctx context.Context, gameID string, report *CompetitionSyncReport, logger *logging.Logger) {
	if s.scorer == nil {
		return
	}
	res, err := s.scorer.ScoreGame(ctx, gameID)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("score game=%s: %v", gameID, err))
		logger.ErrorContext(ctx, "scoring finished game failed", "game_id", gameID, "error", err)
		return
	}
	report.Scored += res.Scored
}

func (s *LiveSyncService) archive(ctx context.Context, comp competition.Competition, batch ExternalMatchBatch, now time.Time, report *CompetitionSyncReport) {
	if !s.cfg.ArchivePayloads || s.rawRepo == nil || len(batch.Raw) == 0 {
		return
	}
	id := ""
	if s.idGen != nil {
		var err error
		if id, err = s.idGen.NewID(); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("archive payload id: %v", err))
			return
		}
	}
	payload := rawdata.Payload{
		ID:            id,
		Provider:      s.cfg.ProviderName,
		Endpoint:      batch.Endpoint,
		CompetitionID: comp.ID,
		Body:          batch.Raw,
		ContentHash:   rawdata.HashBody(batch.Raw),
		FetchedAt:     now,
	}
	if _, err := s.rawRepo.Save(ctx, payload); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("archive payload: %v", err))
		s.logger.WarnContext(ctx, "archive provider payload failed", "competition_id", comp.ID, "error", err)
	}
}

// planUpdate diffs a local game against its external match (nil when unmatched) and
// applies the auto-finish rule. changed is false when nothing would be written.
func planUpdate(local game.Game, ext *externalCandidate, now time.Time, autoFinishAfter time.Duration) (game.LiveUpdate, bool, bool, bool) {
	update := game.LiveUpdate{
		GameID:          local.ID,
		Status:          game.NormalizeStatus(local.Status),
		HomeScore:       local.HomeScore,
		AwayScore:       local.AwayScore,
		Minute:          local.Minute,
		ProviderMatchID: local.ProviderMatchID,
		SyncedAt:        now,
		FinishedAt:      local.FinishedAt,
	}
	changed := false
	externallyLive := false
	auto, stale := false, false

	if ext != nil {
		externallyLive = MapProviderStatus(ext.Status, "") == game.StatusLive
		if ext.HomeScore != nil && !game.SameScore(ext.HomeScore, update.HomeScore) {
			update.HomeScore = game.IntPtr(*ext.HomeScore)
			changed = true
		}
		if ext.AwayScore != nil && !game.SameScore(ext.AwayScore, update.AwayScore) {
			update.AwayScore = game.IntPtr(*ext.AwayScore)
			changed = true
		}
		if minute := strings.TrimSpace(ext.Minute); minute != "" && minute != update.Minute {
			update.Minute = minute
			changed = true
		}
		if ext.ID > 0 && ext.ID != update.ProviderMatchID {
			update.ProviderMatchID = ext.ID
			changed = true
		}

		status := MapProviderStatus(ext.Status, local.Status)
		// a running game is not sent back to SCHEDULED by a lagging feed
		if status == game.StatusScheduled && update.Status == game.StatusLive {
			status = update.Status
		}
		// a final needs both scores; FINISHED games drop out of the sync window
		if status == game.StatusFinished && (update.HomeScore == nil || update.AwayScore == nil) {
			status = update.Status
			stale = true
		}
		if status != update.Status {
			update.Status = status
			changed = true
		}
	}

	overdue := local.IsLive() && autoFinishAfter > 0 && now.Sub(local.KickoffAt) > autoFinishAfter
	if overdue && update.Status == game.StatusLive && (ext == nil || externallyLive) {
		if update.HomeScore != nil && update.AwayScore != nil {
			update.Status = game.StatusFinished
			auto = true
			changed = true
		} else {
			stale = true
		}
	}

	if update.Status == game.StatusFinished && !local.IsFinal() {
		finishedAt := now
		update.FinishedAt = &finishedAt
	}
	return update, changed, auto, stale
}

func summarizeSync(rows []CompetitionSyncReport) LiveSyncTotals {
	var totals LiveSyncTotals
	for _, row := range rows {
		if row.Skipped && row.Error == "" {
			continue
		}
		totals.Competitions++
		if row.Error != "" {
			totals.Failed++
		}
		totals.Fetched += row.Fetched
		totals.Candidates += row.Candidates
		totals.Matched += row.Matched
		totals.Updated += row.Updated
		totals.Unchanged += row.Unchanged
		totals.Finished += row.Finished
		totals.AutoFinished += row.AutoFinished
		totals.Stale += row.Stale
		totals.Scored += row.Scored
	}
	return totals
}

type externalCandidate struct {
	ExternalMatch
	home string
	away string
	used bool
}

type matchPairing struct {
	matches []externalCandidate
	byID    map[int64]int
}

func newMatchPairing(items []ExternalMatch) *matchPairing {
	p := &matchPairing{
		matches: make([]externalCandidate, 0, len(items)),
		byID:    make(map[int64]int, len(items)),
	}
	for _, item := range items {
		p.matches = append(p.matches, externalCandidate{ExternalMatch: item})
		if item.ID > 0 {
			p.byID[item.ID] = len(p.matches) - 1
		}
	}
	return p
}

// find pairs a local game with an unused external match, first by stored provider id
// and then by resolved teams with the closest kickoff inside tolerance.
func (p *matchPairing) find(local game.Game, tolerance time.Duration) *externalCandidate {
	if local.ProviderMatchID > 0 {
		if idx, ok := p.byID[local.ProviderMatchID]; ok && !p.matches[idx].used {
			p.matches[idx].used = true
			return &p.matches[idx]
		}
	}

	bestIdx := -1
	var bestGap time.Duration
	for i := range p.matches {
		ext := &p.matches[i]
		if ext.used || ext.home == "" || ext.away == "" {
			continue
		}
		if ext.home != local.HomeTeamID || ext.away != local.AwayTeamID {
			continue
		}
		gap := absDuration(ext.KickoffAt.Sub(local.KickoffAt))
		if gap > tolerance {
			continue
		}
		if bestIdx < 0 || gap < bestGap {
			bestIdx, bestGap = i, gap
		}
	}
	if bestIdx < 0 {
		return nil
	}
	p.matches[bestIdx].used = true
	return &p.matches[bestIdx]
}

type resolvedTeam struct {
	teamID string
	ok     bool
}

// teamResolver maps external team references onto internal team ids for one run.
type teamResolver struct {
	repo       team.Repository
	matcher    *teammatch.Matcher
	sport      string
	teams      map[string]team.Team
	candidates []teammatch.Candidate
	threshold  float64
	dryRun     bool
	byProvider map[int64]resolvedTeam
	byName     map[string]resolvedTeam
}

func newTeamResolver(repo team.Repository, matcher *teammatch.Matcher, sport string, teams []team.Team, threshold float64, dryRun bool) *teamResolver {
	index := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return &teamResolver{
		repo:       repo,
		matcher:    matcher,
		sport:      sport,
		teams:      index,
		candidates: TeamCandidates(teams),
		threshold:  threshold,
		dryRun:     dryRun,
		byProvider: make(map[int64]resolvedTeam),
		byName:     make(map[string]resolvedTeam),
	}
}

func (r *teamResolver) resolve(ctx context.Context, providerID int64, name string, report *CompetitionSyncReport) string {
	if providerID > 0 {
		if hit, ok := r.byProvider[providerID]; ok && hit.ok {
			return hit.teamID
		}
		item, exists, err := r.repo.GetByProviderID(ctx, r.sport, providerID)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("lookup provider team=%d: %v", providerID, err))
		} else if exists {
			r.byProvider[providerID] = resolvedTeam{teamID: item.ID, ok: true}
			return item.ID
		}
	}

	key := teammatch.Normalize(name)
	if key == "" {
		return ""
	}
	hit, ok := r.byName[key]
	if !ok {
		match, found := r.matcher.Best(name, r.candidates, r.threshold)
		hit = resolvedTeam{teamID: match.Candidate.ID, ok: found}
		r.byName[key] = hit
		if !found {
			report.UnmatchedTeams = append(report.UnmatchedTeams, strings.TrimSpace(name))
		}
	}
	if !hit.ok {
		return ""
	}

	if providerID > 0 {
		r.byProvider[providerID] = hit
		r.link(ctx, hit.teamID, providerID, report)
	}
	return hit.teamID
}

// link stores the feed's team id on a team that has none yet.
func (r *teamResolver) link(ctx context.Context, teamID string, providerID int64, report *CompetitionSyncReport) {
	item, ok := r.teams[teamID]
	if !ok || item.ProviderTeamID != 0 {
		return
	}
	item.ProviderTeamID = providerID
	r.teams[teamID] = item
	report.TeamsLinked++
	if r.dryRun {
		return
	}
	if err := r.repo.Update(ctx, item); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("link team=%s provider=%d: %v", teamID, providerID, err))
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
