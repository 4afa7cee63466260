package httpapi

import (
	"net/http"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.rosterService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.rosterService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, match))
}

func (h *Handler) ListEligiblePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEligiblePlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	players, err := h.rosterService.ListEligiblePlayers(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list eligible players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerSlotDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerSlotToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
