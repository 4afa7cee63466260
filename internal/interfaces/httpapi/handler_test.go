package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/user"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
	"github.com/primev/fantasy-volleyball/internal/usecase"
)

const testJobToken = "job-sekrit"

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	if v.err != nil {
		return user.Principal{}, v.err
	}
	return v.principal, nil
}

// newTestRouter serves the full route table over the in-memory seed with
// vm-idn-001 pushed into the future so the join window is open.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matches := memory.SeedMatches()
	for i := range matches {
		matches[i].StartAt = time.Now().UTC().Add(24 * time.Hour)
	}

	rosterRepo := memory.NewRosterRepository(matches, memory.SeedPlayerSlots())
	teamRepo := memory.NewTeamRepository()
	statsRepo := memory.NewStatsRepository()
	contestRepo := memory.NewContestRepository(memory.SeedContests(), memory.SeedContestTemplates())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	idGen := staticIDGenerator{id: "team-0001"}

	rosterSvc := usecase.NewRosterService(rosterRepo, logger)
	teamSvc := usecase.NewTeamService(rosterRepo, teamRepo, fantasy.DefaultRules(), idGen, logger)
	scoringSvc := usecase.NewScoringService(contestRepo, teamRepo, statsRepo, logger)
	ingestionSvc := usecase.NewStatsIngestionService(statsRepo, scoringSvc, logger)
	contestSvc := usecase.NewContestService(contestRepo, contestRepo, teamRepo, rosterRepo, idGen, logger)
	leaderboardSvc := usecase.NewLeaderboardService(contestRepo, scoringSvc, logger)
	statfeedSvc := usecase.NewStatfeedService(nil, ingestionSvc, rosterRepo, logger)

	handler := NewHandler(rosterSvc, teamSvc, contestSvc, scoringSvc, leaderboardSvc, ingestionSvc, statfeedSvc, logger)
	verifier := stubVerifier{principal: user.Principal{UserID: "user-1", Name: "Tester"}}
	return NewRouter(handler, verifier, logger, []string{"*"}, testJobToken)
}

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func doJSON(router http.Handler, method, target, token, payload string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("healthz", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/healthz", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("list matches", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/v1/matches", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		data, ok := body["data"].([]any)
		if !ok || len(data) != 3 {
			t.Fatalf("expected 3 matches, got %v", body["data"])
		}
	})

	t.Run("eligible players for match", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/v1/matches/vm-idn-001/players", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		data, ok := body["data"].([]any)
		if !ok || len(data) != 12 {
			t.Fatalf("expected 12 player slots, got %v", body["data"])
		}
	})

	t.Run("unknown match is 404", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/v1/matches/vm-missing", "", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		errorObj, ok := body["error"].(map[string]any)
		if !ok {
			t.Fatal("expected error object")
		}
		if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
			t.Fatalf("expected NOT_FOUND, got %v", errorObj["status"])
		}
	})
}

func TestRouter_TeamAndContestFlow(t *testing.T) {
	router := newTestRouter(t)

	const createTeamPayload = `{
		"match_id": "vm-idn-001",
		"name": "Smash Bros",
		"player_ids": ["vp-set-01", "vp-atk-01", "vp-atk-02", "vp-blk-02", "vp-uni-02", "vp-lib-02"],
		"captain_id": "vp-atk-02",
		"vice_captain_id": "vp-atk-01"
	}`

	t.Run("create team requires auth", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/v1/fantasy/teams", "", createTeamPayload)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("create team then join and read the leaderboard", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/v1/fantasy/teams", "token-1", createTeamPayload)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected team payload, got %v", body["data"])
		}
		if got, _ := data["credits_spent"].(float64); got != 87 {
			t.Fatalf("expected 87 credits spent, got %v", data["credits_spent"])
		}

		rec = doJSON(router, http.MethodPost, "/v1/contests/ct-idn-002/join", "token-1", `{"team_ids": ["team-0001"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on join, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(router, http.MethodGet, "/v1/contests/ct-idn-002", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body = decodeEnvelope(t, rec)
		data, _ = body["data"].(map[string]any)
		if got, _ := data["spots_left"].(float64); got != 1 {
			t.Fatalf("expected 1 spot left after join, got %v", data["spots_left"])
		}

		rec = doJSON(router, http.MethodGet, "/v1/contests/ct-idn-002/leaderboard", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body = decodeEnvelope(t, rec)
		rows, ok := body["data"].([]any)
		if !ok || len(rows) != 1 {
			t.Fatalf("expected one leaderboard row, got %v", body["data"])
		}

		// Second join with the same team conflicts.
		rec = doJSON(router, http.MethodPost, "/v1/contests/ct-idn-002/join", "token-1", `{"team_ids": ["team-0001"]}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on duplicate join, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown json fields", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/v1/fantasy/teams", "token-1", `{"match_id": "vm-idn-001", "surprise": true}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRouter_InternalRoutes(t *testing.T) {
	router := newTestRouter(t)

	const ingestPayload = `{
		"match_id": "vm-idn-001",
		"lines": [
			{"player_id": "vp-atk-02", "set": 1, "is_starter": true, "set_result": "win", "attacks": 2}
		]
	}`

	t.Run("ingestion requires the job token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/match-stats", strings.NewReader(ingestPayload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ingestion applies and reports counts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/match-stats", strings.NewReader(ingestPayload))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, _ := body["data"].(map[string]any)
		if got, _ := data["players"].(float64); got != 1 {
			t.Fatalf("expected 1 player ingested, got %v", data["players"])
		}

		rec = doJSON(router, http.MethodGet, "/v1/matches/vm-idn-001/scoreboard", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body = decodeEnvelope(t, rec)
		scores, ok := body["data"].([]any)
		if !ok || len(scores) != 1 {
			t.Fatalf("expected one scoreboard row, got %v", body["data"])
		}
		row, _ := scores[0].(map[string]any)
		if got, _ := row["points"].(float64); got != 18 {
			t.Fatalf("expected 18 points, got %v", row["points"])
		}
	})

	t.Run("statfeed poll without a provider still answers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/poll-statfeed", nil)
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("stamps a contest from a template", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/contests",
			strings.NewReader(`{"match_id": "vm-idn-002", "template_id": "tpl-h2h"}`))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, _ := body["data"].(map[string]any)
		if got, _ := data["match_id"].(string); got != "vm-idn-002" {
			t.Fatalf("expected contest on vm-idn-002, got %v", data["match_id"])
		}
	})
}
