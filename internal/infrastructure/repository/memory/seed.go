package memory

import (
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
)

const (
	CompetitionIDPremierLeague = "eng-premier-league-2026"
	CompetitionIDPremiership   = "eng-premiership-rugby-2026"
)

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:           CompetitionIDPremierLeague,
			Name:         "Premier League",
			Sport:        competition.SportFootball,
			Season:       "2026/2027",
			ProviderCode: "PL",
			StartsAt:     time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			EndsAt:       time.Date(2027, 5, 23, 23, 59, 0, 0, time.UTC),
			IsActive:     true,
		},
		{
			ID:       CompetitionIDPremiership,
			Name:     "Premiership Rugby",
			Sport:    competition.SportRugby,
			Season:   "2026/2027",
			StartsAt: time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2027, 6, 12, 23, 59, 0, 0, time.UTC),
			IsActive: true,
		},
	}
}

// SeedTeams leaves some provider ids empty so the first sync links them by name.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "fb-ars", Name: "Arsenal", ShortName: "ARS", Sport: competition.SportFootball, Country: "GB", ProviderTeamID: 57, Aliases: []string{"Gunners"}},
		{ID: "fb-che", Name: "Chelsea", ShortName: "CHE", Sport: competition.SportFootball, Country: "GB", ProviderTeamID: 61},
		{ID: "fb-liv", Name: "Liverpool", ShortName: "LIV", Sport: competition.SportFootball, Country: "GB", ProviderTeamID: 64},
		{ID: "fb-mci", Name: "Manchester City", ShortName: "MCI", Sport: competition.SportFootball, Country: "GB", Aliases: []string{"Man City"}},
		{ID: "fb-mun", Name: "Manchester United", ShortName: "MUN", Sport: competition.SportFootball, Country: "GB", Aliases: []string{"Man Utd"}},
		{ID: "fb-tot", Name: "Tottenham Hotspur", ShortName: "TOT", Sport: competition.SportFootball, Country: "GB", Aliases: []string{"Spurs"}},
		{ID: "rg-bat", Name: "Bath Rugby", ShortName: "BAT", Sport: competition.SportRugby, Country: "GB"},
		{ID: "rg-lei", Name: "Leicester Tigers", ShortName: "LEI", Sport: competition.SportRugby, Country: "GB", Aliases: []string{"Tigers"}},
		{ID: "rg-nor", Name: "Northampton Saints", ShortName: "NOR", Sport: competition.SportRugby, Country: "GB", Aliases: []string{"Saints"}},
		{ID: "rg-sar", Name: "Saracens", ShortName: "SAR", Sport: competition.SportRugby, Country: "GB"},
	}
}

func SeedGames() []game.Game {
	return []game.Game{
		{
			ID:            "gm-pl-001",
			CompetitionID: CompetitionIDPremierLeague,
			Matchday:      9,
			HomeTeamID:    "fb-ars",
			AwayTeamID:    "fb-liv",
			KickoffAt:     time.Date(2026, 10, 24, 16, 30, 0, 0, time.UTC),
			Status:        game.StatusScheduled,
		},
		{
			ID:            "gm-pl-002",
			CompetitionID: CompetitionIDPremierLeague,
			Matchday:      9,
			HomeTeamID:    "fb-mun",
			AwayTeamID:    "fb-mci",
			KickoffAt:     time.Date(2026, 10, 25, 15, 30, 0, 0, time.UTC),
			Status:        game.StatusScheduled,
		},
		{
			ID:            "gm-pl-003",
			CompetitionID: CompetitionIDPremierLeague,
			Matchday:      10,
			HomeTeamID:    "fb-tot",
			AwayTeamID:    "fb-che",
			KickoffAt:     time.Date(2026, 10, 31, 17, 30, 0, 0, time.UTC),
			Status:        game.StatusScheduled,
		},
		{
			ID:            "gm-pr-001",
			CompetitionID: CompetitionIDPremiership,
			Matchday:      5,
			HomeTeamID:    "rg-bat",
			AwayTeamID:    "rg-sar",
			KickoffAt:     time.Date(2026, 10, 24, 14, 0, 0, 0, time.UTC),
			Status:        game.StatusScheduled,
		},
		{
			ID:            "gm-pr-002",
			CompetitionID: CompetitionIDPremiership,
			Matchday:      5,
			HomeTeamID:    "rg-lei",
			AwayTeamID:    "rg-nor",
			KickoffAt:     time.Date(2026, 10, 25, 15, 0, 0, 0, time.UTC),
			Status:        game.StatusScheduled,
		},
	}
}
