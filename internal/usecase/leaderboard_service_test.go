package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *memory.ContestRepository) {
	t.Helper()

	contestRepo := memory.NewContestRepository([]contest.Contest{{
		ID:              "ct-board",
		MatchID:         "vm-idn-001",
		Name:            "Board Pool",
		PrizePool:       200,
		TotalSpots:      100,
		SpotsLeft:       100,
		MaxTeamsPerUser: 10,
		Status:          contest.StatusOpen,
		PrizeBands: []contest.PrizeBand{
			{RankStart: 1, RankEnd: 1, Amount: 100},
			{RankStart: 2, RankEnd: 3, Amount: 50},
		},
	}}, nil)
	teamRepo := memory.NewTeamRepository()
	statsRepo := memory.NewStatsRepository()

	teams := map[string]string{
		"team-a": "vp-atk-02",
		"team-b": "vp-atk-01",
		"team-c": "vp-set-01",
		"team-d": "vp-set-02",
	}
	joined := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)
	for teamID, playerID := range teams {
		err := teamRepo.Create(t.Context(), fantasy.UserTeam{
			ID:      teamID,
			UserID:  "user-" + teamID,
			MatchID: "vm-idn-001",
			Picks:   []fantasy.TeamPick{{PlayerID: playerID, RealTeamID: memory.TeamIDLavani, Category: "attacker", Credits: 15}},
		})
		if err != nil {
			t.Fatalf("seed team %s: %v", teamID, err)
		}
		err = contestRepo.Join(t.Context(), "ct-board", 10, []contest.Entry{
			{ContestID: "ct-board", TeamID: teamID, UserID: "user-" + teamID, JoinedAt: joined},
		})
		if err != nil {
			t.Fatalf("seed entry %s: %v", teamID, err)
		}
	}

	// 32, 18, 12 and 0 points respectively.
	lines := []stats.Update{
		{MatchID: "vm-idn-001", PlayerID: "vp-atk-02", Line: stats.SetStat{Set: 1, IsStarter: true, Result: stats.SetResultWin, Blocks: 1}},
		{MatchID: "vm-idn-001", PlayerID: "vp-atk-01", Line: stats.SetStat{Set: 1, IsStarter: true, Result: stats.SetResultWin, Attacks: 2}},
		{MatchID: "vm-idn-001", PlayerID: "vp-set-01", Line: stats.SetStat{Set: 1, IsStarter: true, Result: stats.SetResultWin}},
	}
	for _, line := range lines {
		if err := statsRepo.UpsertSetLine(t.Context(), line); err != nil {
			t.Fatalf("seed stat line: %v", err)
		}
	}

	scoringSvc := NewScoringService(contestRepo, teamRepo, statsRepo, testLogger())
	return NewLeaderboardService(contestRepo, scoringSvc, testLogger()), contestRepo
}

func TestLeaderboardServiceRank(t *testing.T) {
	service, _ := newLeaderboardFixture(t)

	rows, err := service.Rank(t.Context(), "ct-board")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 leaderboard rows, got %d", len(rows))
	}

	wantOrder := []struct {
		teamID string
		points int
		rank   int
	}{
		{"team-a", 32, 1},
		{"team-b", 18, 2},
		{"team-c", 12, 3},
		{"team-d", 0, 4},
	}
	for idx, want := range wantOrder {
		row := rows[idx]
		if row.Entry.TeamID != want.teamID || row.Entry.TotalPoints != want.points || row.Entry.Rank != want.rank {
			t.Fatalf("row %d: expected %+v, got %+v", idx, want, row.Entry)
		}
	}

	if rows[0].Prize == nil || rows[0].Prize.Amount != 100 {
		t.Fatalf("expected rank 1 to win 100, got %+v", rows[0].Prize)
	}
	if rows[1].Prize == nil || rows[1].Prize.Amount != 50 {
		t.Fatalf("expected rank 2 to win 50, got %+v", rows[1].Prize)
	}
	if rows[2].Prize == nil || rows[2].Prize.Amount != 50 {
		t.Fatalf("expected rank 3 to win 50, got %+v", rows[2].Prize)
	}
	if rows[3].Prize != nil {
		t.Fatalf("expected rank 4 outside the prize bands, got %+v", rows[3].Prize)
	}
}

func TestLeaderboardServiceRank_UnknownContest(t *testing.T) {
	service, _ := newLeaderboardFixture(t)

	_, err := service.Rank(t.Context(), "ct-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardServiceRank_EmptyContestID(t *testing.T) {
	service, _ := newLeaderboardFixture(t)

	_, err := service.Rank(t.Context(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
