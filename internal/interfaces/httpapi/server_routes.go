package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /health", handler.Healthz)
}

func registerFootballRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/upcoming", handler.ListUpcomingFixtures)
	mux.HandleFunc("GET /v1/fixtures/live", handler.ListLiveFixtures)
	mux.HandleFunc("GET /v1/results", handler.ListResults)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalSyncToken string) {
	mux.Handle("POST /v1/internal/sync", RequireInternalSyncToken(internalSyncToken, http.HandlerFunc(handler.TriggerSync)))
}
