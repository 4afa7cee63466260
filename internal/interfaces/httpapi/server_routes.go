package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/players", handler.ListEligiblePlayers)
	mux.HandleFunc("GET /v1/matches/{matchID}/contests", handler.ListContestsByMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/scoreboard", handler.GetMatchScoreboard)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	mux.HandleFunc("GET /v1/contests/{contestID}/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/fantasy/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/fantasy/teams/try-pick", RequireAuth(verifier, http.HandlerFunc(handler.TryPick)))
	mux.Handle("GET /v1/fantasy/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("PUT /v1/fantasy/teams/{teamID}/captaincy", RequireAuth(verifier, http.HandlerFunc(handler.UpdateCaptaincy)))
	mux.Handle("POST /v1/contests/{contestID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinContest)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/match-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestMatchStats)))
	mux.Handle("POST /v1/internal/jobs/poll-statfeed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStatfeedPoll)))
	mux.Handle("POST /v1/internal/jobs/rescore/{matchID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMatchRescore)))
	mux.Handle("POST /v1/internal/contests", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreateContest)))
	mux.Handle("GET /v1/internal/contest-templates", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListContestTemplates)))
	mux.Handle("PUT /v1/internal/contest-templates/{templateID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpsertContestTemplate)))
}
