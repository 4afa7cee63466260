package scoring

import (
	"testing"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

func TestScorePlayer(t *testing.T) {
	tests := []struct {
		name string
		sets []stats.SetStat
		want int
	}{
		{
			name: "no sets played",
			sets: nil,
			want: 0,
		},
		{
			name: "starter in won set with attacks and a block",
			sets: []stats.SetStat{
				{Set: 1, IsStarter: true, Result: stats.SetResultWin, Attacks: 3, Receptions: 2, Blocks: 1},
			},
			// 6 + 6 + 9 + 6 + 20
			want: 47,
		},
		{
			name: "substitute in lost set with an ace",
			sets: []stats.SetStat{
				{Set: 2, IsStarter: false, Result: stats.SetResultLoss, Attacks: 1, Aces: 1},
			},
			// 3 - 3 + 3 + 20
			want: 23,
		},
		{
			name: "unfinished set carries no result points",
			sets: []stats.SetStat{
				{Set: 3, IsStarter: true, Result: stats.SetResultNone, Receptions: 1},
			},
			// 6 + 3
			want: 9,
		},
		{
			name: "multiple sets accumulate",
			sets: []stats.SetStat{
				{Set: 1, IsStarter: true, Result: stats.SetResultWin, Attacks: 3, Receptions: 2, Blocks: 1},
				{Set: 2, IsStarter: false, Result: stats.SetResultLoss, Attacks: 1, Aces: 1},
			},
			want: 70,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScorePlayer(stats.PlayerMatchStats{PlayerID: "p1", MatchID: "m1", Sets: tc.sets})
			if got != tc.want {
				t.Fatalf("expected %d points, got %d", tc.want, got)
			}
		})
	}
}

func TestScorePlayer_CorrectionRecomputesFromScratch(t *testing.T) {
	before := stats.PlayerMatchStats{
		PlayerID: "p1",
		MatchID:  "m1",
		Sets: []stats.SetStat{
			{Set: 1, IsStarter: true, Result: stats.SetResultWin, Aces: 2},
		},
	}
	if got := ScorePlayer(before); got != 52 {
		t.Fatalf("expected 52 points before correction, got %d", got)
	}

	// The feed re-delivers the corrected set line as a full replacement.
	after := before
	after.Sets = []stats.SetStat{
		{Set: 1, IsStarter: true, Result: stats.SetResultWin, Aces: 1},
	}
	if got := ScorePlayer(after); got != 32 {
		t.Fatalf("expected 32 points after correction, got %d", got)
	}
}

func TestScoreTeam(t *testing.T) {
	team := fantasy.UserTeam{
		ID:      "team-1",
		UserID:  "user-1",
		MatchID: "m1",
		Picks: []fantasy.TeamPick{
			{PlayerID: "p1"},
			{PlayerID: "p2"},
			{PlayerID: "p3"},
		},
		CaptainID:     "p1",
		ViceCaptainID: "p2",
	}

	statsByPlayer := map[string]stats.PlayerMatchStats{
		"p1": {PlayerID: "p1", MatchID: "m1", Sets: []stats.SetStat{
			{Set: 1, IsStarter: true, Result: stats.SetResultWin, Attacks: 3, Receptions: 2, Blocks: 1},
			{Set: 2, IsStarter: false, Result: stats.SetResultLoss, Attacks: 1, Aces: 1},
		}},
		"p2": {PlayerID: "p2", MatchID: "m1", Sets: []stats.SetStat{
			{Set: 1, IsStarter: false, Result: stats.SetResultNone},
		}},
		"p3": {PlayerID: "p3", MatchID: "m1", Sets: []stats.SetStat{
			{Set: 1, IsStarter: true, Result: stats.SetResultLoss, Receptions: 1},
		}},
	}

	// captain 70*2 + vice 3*1.5 + 6, rounded once: 150.5 -> 151.
	if got := ScoreTeam(team, statsByPlayer); got != 151 {
		t.Fatalf("expected team total 151, got %d", got)
	}
}

func TestScoreTeam_MissingStatsScoreZero(t *testing.T) {
	team := fantasy.UserTeam{
		ID:      "team-1",
		UserID:  "user-1",
		MatchID: "m1",
		Picks: []fantasy.TeamPick{
			{PlayerID: "p1"},
			{PlayerID: "p2"},
		},
		CaptainID:     "p1",
		ViceCaptainID: "p2",
	}

	statsByPlayer := map[string]stats.PlayerMatchStats{
		"p1": {PlayerID: "p1", MatchID: "m1", Sets: []stats.SetStat{
			{Set: 1, IsStarter: true, Result: stats.SetResultWin},
		}},
	}

	if got := ScoreTeam(team, statsByPlayer); got != 24 {
		t.Fatalf("expected only captain points 24, got %d", got)
	}
}
