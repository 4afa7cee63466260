package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/usecase"
)

func (h *Handler) ListContestsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestsByMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	contests, err := h.contestService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, item := range contests {
		items = append(items, contestToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := r.PathValue("contestID")
	item, err := h.contestService.Get(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, item))
}

func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinContest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinContestRequest
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

	contestID := r.PathValue("contestID")
	entries, err := h.contestService.Join(ctx, usecase.JoinContestInput{
		ContestID: contestID,
		UserID:    principal.UserID,
		TeamIDs:   req.TeamIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join contest failed", "user_id", principal.UserID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) CreateContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateContest")
	defer span.End()

	var req createContestRequest
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

	item, err := h.contestService.CreateFromTemplate(ctx, usecase.CreateContestInput{
		MatchID:    req.MatchID,
		TemplateID: req.TemplateID,
		Name:       req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create contest failed", "match_id", req.MatchID, "template_id", req.TemplateID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, contestToDTO(ctx, item))
}

func (h *Handler) ListContestTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestTemplates")
	defer span.End()

	templates, err := h.contestService.ListTemplates(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list contest templates failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]templateDTO, 0, len(templates))
	for _, template := range templates {
		items = append(items, templateToDTO(template))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertContestTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertContestTemplate")
	defer span.End()

	var req upsertTemplateRequest
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

	template := contest.Template{
		ID:              r.PathValue("templateID"),
		Name:            req.Name,
		Description:     req.Description,
		EntryFee:        req.EntryFee,
		PrizePool:       req.PrizePool,
		MaxSpots:        req.MaxSpots,
		MaxTeamsPerUser: req.MaxTeamsPerUser,
		WinnerPct:       req.WinnerPct,
		IsGuaranteed:    req.IsGuaranteed,
	}
	if err := h.contestService.UpsertTemplate(ctx, template); err != nil {
		h.logger.WarnContext(ctx, "upsert contest template failed", "template_id", template.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, templateToDTO(template))
}
