package httpapi

import (
	"net/http"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := r.PathValue("contestID")
	rows, err := h.leaderboardService.Rank(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchScoreboard")
	defer span.End()

	matchID := r.PathValue("matchID")
	scores, err := h.scoringService.ScoreboardForMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match scoreboard failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, playerScoreDTO{PlayerID: score.PlayerID, Points: score.Points})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
