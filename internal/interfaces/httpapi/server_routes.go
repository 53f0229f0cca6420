package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/games", handler.ListCompetitionGames)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/progression", handler.GetProgression)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("GET /v1/dashboard", auth(handler.GetDashboard))
	mux.Handle("POST /v1/competitions/{competitionID}/join", auth(handler.JoinCompetition))
	mux.Handle("GET /v1/competitions/{competitionID}/bets/me", auth(handler.ListMyBets))
	mux.Handle("GET /v1/competitions/{competitionID}/performance/me", auth(handler.GetMyPerformance))
	mux.Handle("PUT /v1/games/{gameID}/bet", auth(handler.PlaceBet))
	mux.Handle("GET /v1/games/{gameID}/bets", auth(handler.ListGameBets))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("GET /v1/admin/teams", admin(handler.ListTeams))
	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/admin/teams/{teamID}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(handler.DeleteTeam))
	mux.Handle("POST /v1/admin/teams/match", admin(handler.MatchTeams))

	mux.Handle("POST /v1/admin/competitions", admin(handler.CreateCompetition))
	mux.Handle("POST /v1/admin/competitions/{competitionID}/games", admin(handler.CreateGame))
	mux.Handle("POST /v1/admin/competitions/{competitionID}/rescore", admin(handler.RescoreCompetition))
	mux.Handle("PUT /v1/admin/games/{gameID}/result", admin(handler.SetGameResult))

	mux.Handle("GET /v1/admin/settings", admin(handler.ListSettings))
	mux.Handle("PUT /v1/admin/settings/{key}", admin(handler.UpdateSetting))

	mux.Handle("POST /v1/admin/sync/live", admin(handler.RunLiveSync))
	mux.Handle("GET /v1/admin/jobs/dispatches", admin(handler.ListJobDispatches))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/bootstrap", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBootstrapJob)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
}
