package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/advance", handler.AdvanceMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/complete", handler.CompleteMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
	mux.HandleFunc("GET /v1/matches/{matchID}/trace", handler.ListMatchTrace)
	mux.HandleFunc("POST /v1/rounds", handler.SimulateRound)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/players/{playerID}/season", handler.GetPlayerSeason)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
}
