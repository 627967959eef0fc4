package httpapi

import (
	"fmt"
	"net/http"

	"github.com/northbank/supporters-api/internal/usecase"
)

const maxUpcomingFixtureLimit = 50

func (h *Handler) ListUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingFixtures")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if limit < 0 || limit > maxUpcomingFixtureLimit {
		writeError(ctx, w, fmt.Errorf("%w: limit must be between 0 and %d", usecase.ErrInvalidInput, maxUpcomingFixtureLimit))
		return
	}

	fixtures, err := h.queryService.UpcomingFixtures(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list upcoming fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtures)
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.queryService.Results(ctx, seasonYear)
	if err != nil {
		h.logger.ErrorContext(ctx, "list results failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.queryService.Standings(ctx, seasonYear)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	onlyCurrent, err := queryBool(r, "current", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitions, err := h.queryService.Competitions(ctx, onlyCurrent)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitions)
}

func (h *Handler) ListLiveFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveFixtures")
	defer span.End()

	live, err := h.queryService.LiveFixtures(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list live fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, live)
}
