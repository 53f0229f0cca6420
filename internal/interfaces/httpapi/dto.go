package httpapi

import (
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

type competitionDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Sport        string `json:"sport"`
	Season       string `json:"season"`
	ProviderCode string `json:"provider_code,omitempty"`
	StartsAtUTC  string `json:"starts_at_utc"`
	EndsAtUTC    string `json:"ends_at_utc"`
	IsActive     bool   `json:"is_active"`
}

type participantDTO struct {
	CompetitionID string `json:"competition_id"`
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	JoinedAtUTC   string `json:"joined_at_utc"`
}

type gameDTO struct {
	ID              string  `json:"id"`
	CompetitionID   string  `json:"competition_id"`
	Matchday        int     `json:"matchday"`
	HomeTeamID      string  `json:"home_team_id"`
	AwayTeamID      string  `json:"away_team_id"`
	KickoffAtUTC    string  `json:"kickoff_at_utc"`
	Status          string  `json:"status"`
	HomeScore       *int    `json:"home_score"`
	AwayScore       *int    `json:"away_score"`
	Minute          string  `json:"minute,omitempty"`
	ProviderMatchID int64   `json:"provider_match_id,omitempty"`
	LastSyncedAtUTC *string `json:"last_synced_at_utc,omitempty"`
	FinishedAtUTC   *string `json:"finished_at_utc,omitempty"`
}

type betDTO struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	GameID        string `json:"game_id"`
	CompetitionID string `json:"competition_id"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	Points        *int   `json:"points"`
	ResultKind    string `json:"result_kind,omitempty"`
	CreatedAtUTC  string `json:"created_at_utc"`
	UpdatedAtUTC  string `json:"updated_at_utc"`
}

type teamDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ShortName      string   `json:"short_name,omitempty"`
	Sport          string   `json:"sport"`
	Country        string   `json:"country,omitempty"`
	ProviderTeamID int64    `json:"provider_team_id,omitempty"`
	Aliases        []string `json:"aliases"`
}

type dashboardGameDTO struct {
	Game  gameDTO `json:"game"`
	MyBet *betDTO `json:"my_bet,omitempty"`
}

type dashboardDTO struct {
	CompetitionID    string                  `json:"competition_id"`
	CompetitionName  string                  `json:"competition_name"`
	Me               *usecase.LeaderboardRow `json:"me,omitempty"`
	ParticipantCount int                     `json:"participant_count"`
	Upcoming         []dashboardGameDTO      `json:"upcoming"`
	RecentBets       []betDTO                `json:"recent_bets"`
}

type gameResultDTO struct {
	Game    gameDTO                 `json:"game"`
	Scoring usecase.ScoreGameResult `json:"scoring"`
}

type dispatchEventDTO struct {
	DispatchID    string         `json:"dispatch_id"`
	JobName       string         `json:"job_name"`
	JobPath       string         `json:"job_path"`
	CompetitionID string         `json:"competition_id,omitempty"`
	Status        string         `json:"status"`
	Payload       map[string]any `json:"payload,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	OccurredAtUTC string         `json:"occurred_at_utc"`
	TraceID       string         `json:"trace_id,omitempty"`
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatUTCPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatUTC(*t)
	return &v
}

func competitionToDTO(v competition.Competition) competitionDTO {
	return competitionDTO{
		ID:           v.ID,
		Name:         v.Name,
		Sport:        v.Sport,
		Season:       v.Season,
		ProviderCode: v.ProviderCode,
		StartsAtUTC:  formatUTC(v.StartsAt),
		EndsAtUTC:    formatUTC(v.EndsAt),
		IsActive:     v.IsActive,
	}
}

func participantToDTO(v competition.Participant) participantDTO {
	return participantDTO{
		CompetitionID: v.CompetitionID,
		UserID:        v.UserID,
		DisplayName:   v.DisplayName,
		JoinedAtUTC:   formatUTC(v.JoinedAt),
	}
}

func gameToDTO(v game.Game) gameDTO {
	return gameDTO{
		ID:              v.ID,
		CompetitionID:   v.CompetitionID,
		Matchday:        v.Matchday,
		HomeTeamID:      v.HomeTeamID,
		AwayTeamID:      v.AwayTeamID,
		KickoffAtUTC:    formatUTC(v.KickoffAt),
		Status:          v.Status,
		HomeScore:       v.HomeScore,
		AwayScore:       v.AwayScore,
		Minute:          v.Minute,
		ProviderMatchID: v.ProviderMatchID,
		LastSyncedAtUTC: formatUTCPtr(v.LastSyncedAt),
		FinishedAtUTC:   formatUTCPtr(v.FinishedAt),
	}
}

func gamesToDTO(items []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	return out
}

func betToDTO(v bet.Bet) betDTO {
	return betDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		GameID:        v.GameID,
		CompetitionID: v.CompetitionID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
		Points:        v.Points,
		ResultKind:    v.ResultKind,
		CreatedAtUTC:  formatUTC(v.CreatedAt),
		UpdatedAtUTC:  formatUTC(v.UpdatedAt),
	}
}

func betsToDTO(items []bet.Bet) []betDTO {
	out := make([]betDTO, 0, len(items))
	for _, item := range items {
		out = append(out, betToDTO(item))
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	aliases := append([]string{}, v.Aliases...)
	return teamDTO{
		ID:             v.ID,
		Name:           v.Name,
		ShortName:      v.ShortName,
		Sport:          v.Sport,
		Country:        v.Country,
		ProviderTeamID: v.ProviderTeamID,
		Aliases:        aliases,
	}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	upcoming := make([]dashboardGameDTO, 0, len(v.Upcoming))
	for _, item := range v.Upcoming {
		row := dashboardGameDTO{Game: gameToDTO(item.Game)}
		if item.MyBet != nil {
			mine := betToDTO(*item.MyBet)
			row.MyBet = &mine
		}
		upcoming = append(upcoming, row)
	}

	return dashboardDTO{
		CompetitionID:    v.CompetitionID,
		CompetitionName:  v.CompetitionName,
		Me:               v.Me,
		ParticipantCount: v.ParticipantCount,
		Upcoming:         upcoming,
		RecentBets:       betsToDTO(v.RecentBets),
	}
}

func dispatchEventToDTO(v jobscheduler.DispatchEvent) dispatchEventDTO {
	return dispatchEventDTO{
		DispatchID:    v.DispatchID,
		JobName:       v.JobName,
		JobPath:       v.JobPath,
		CompetitionID: v.CompetitionID,
		Status:        string(v.Status),
		Payload:       v.Payload,
		ErrorMessage:  v.ErrorMessage,
		OccurredAtUTC: formatUTC(v.OccurredAt),
		TraceID:       v.TraceID,
	}
}
