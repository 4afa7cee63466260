package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/primev/fantasy-volleyball/internal/domain/stats"
	"github.com/primev/fantasy-volleyball/internal/usecase"
)

func (h *Handler) IngestMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestMatchStats")
	defer span.End()

	var req ingestMatchStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updates := make([]stats.Update, 0, len(req.Lines))
	for _, line := range req.Lines {
		updates = append(updates, stats.Update{
			MatchID:  req.MatchID,
			PlayerID: line.PlayerID,
			Line: stats.SetStat{
				Set:        line.Set,
				IsStarter:  line.IsStarter,
				Result:     stats.SetResult(line.SetResult),
				Attacks:    line.Attacks,
				Receptions: line.Receptions,
				Aces:       line.Aces,
				Blocks:     line.Blocks,
			},
		})
	}

	result, err := h.ingestionService.ApplyUpdates(ctx, req.MatchID, updates)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest match stats failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunStatfeedPoll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunStatfeedPoll")
	defer span.End()

	result, err := h.statfeedService.PollLiveMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "statfeed poll failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunMatchRescore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMatchRescore")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.scoringService.RescoreMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "match rescore failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "rescored", "match_id": matchID})
}
