package memory

import (
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

const (
	LeagueIDProliga = "idn-proliga-2026"

	TeamIDLavani      = "idn-lavani"
	TeamIDBhayangkara = "idn-bhayangkara"
	TeamIDSTINBIN     = "idn-stin-bin"
	TeamIDSumsel      = "idn-bank-sumsel"
)

func SeedMatches() []roster.Match {
	return []roster.Match{
		{
			ID:         "vm-idn-001",
			LeagueID:   LeagueIDProliga,
			HomeTeamID: TeamIDLavani,
			AwayTeamID: TeamIDBhayangkara,
			StartAt:    time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC),
			Status:     roster.MatchStatusUpcoming,
			Venue:      "GOR Among Rogo",
			Round:      "regular-1",
		},
		{
			ID:         "vm-idn-002",
			LeagueID:   LeagueIDProliga,
			HomeTeamID: TeamIDSTINBIN,
			AwayTeamID: TeamIDSumsel,
			StartAt:    time.Date(2026, 2, 15, 14, 0, 0, 0, time.UTC),
			Status:     roster.MatchStatusUpcoming,
			Venue:      "Padepokan Voli Jenderal Polisi Kunarto",
			Round:      "regular-1",
		},
		{
			ID:         "vm-idn-003",
			LeagueID:   LeagueIDProliga,
			HomeTeamID: TeamIDBhayangkara,
			AwayTeamID: TeamIDSTINBIN,
			StartAt:    time.Date(2026, 2, 21, 19, 0, 0, 0, time.UTC),
			Status:     roster.MatchStatusUpcoming,
			Venue:      "GOR Sritex Arena",
			Round:      "regular-2",
		},
	}
}

func SeedPlayerSlots() []roster.PlayerSlot {
	slots := []roster.PlayerSlot{
		{PlayerID: "vp-set-01", Name: "Dio Zulfikri", Category: roster.CategorySetter, Credits: 14, RealTeamID: TeamIDLavani, LastMatchPoints: 38, SelectionPct: 61.2},
		{PlayerID: "vp-set-02", Name: "Adi Sucipto", Category: roster.CategorySetter, Credits: 12, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 31, SelectionPct: 44.5},
		{PlayerID: "vp-atk-01", Name: "Boy Arnez Arabi", Category: roster.CategoryAttacker, Credits: 18, RealTeamID: TeamIDLavani, LastMatchPoints: 74, SelectionPct: 82.0},
		{PlayerID: "vp-atk-02", Name: "Rivan Nurmulki", Category: roster.CategoryAttacker, Credits: 19, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 81, SelectionPct: 88.4},
		{PlayerID: "vp-atk-03", Name: "Fahri Septian", Category: roster.CategoryAttacker, Credits: 15, RealTeamID: TeamIDLavani, LastMatchPoints: 52, SelectionPct: 47.1},
		{PlayerID: "vp-atk-04", Name: "Jasen Natarendra", Category: roster.CategoryAttacker, Credits: 14, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 49, SelectionPct: 39.8},
		{PlayerID: "vp-blk-01", Name: "Hernanda Zulfi", Category: roster.CategoryBlocker, Credits: 16, RealTeamID: TeamIDLavani, LastMatchPoints: 58, SelectionPct: 55.3},
		{PlayerID: "vp-blk-02", Name: "Agil Angga", Category: roster.CategoryBlocker, Credits: 13, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 41, SelectionPct: 33.7},
		{PlayerID: "vp-uni-01", Name: "Yuda Mardiansyah", Category: roster.CategoryUniversal, Credits: 15, RealTeamID: TeamIDLavani, LastMatchPoints: 47, SelectionPct: 42.9},
		{PlayerID: "vp-uni-02", Name: "Dimas Saputra", Category: roster.CategoryUniversal, Credits: 13, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 36, SelectionPct: 28.6},
		{PlayerID: "vp-lib-01", Name: "Irpan Irpan", Category: roster.CategoryLibero, Credits: 11, RealTeamID: TeamIDLavani, LastMatchPoints: 24, SelectionPct: 35.0},
		{PlayerID: "vp-lib-02", Name: "Alfin Daniel", Category: roster.CategoryLibero, Credits: 10, RealTeamID: TeamIDBhayangkara, LastMatchPoints: 19, SelectionPct: 21.4},
	}

	out := make([]roster.PlayerSlot, 0, len(slots))
	for _, slot := range slots {
		slot.MatchID = "vm-idn-001"
		out = append(out, slot)
	}
	return out
}

func SeedContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:              "ct-idn-001",
			MatchID:         "vm-idn-001",
			Name:            "Mega Contest",
			EntryFee:        49,
			PrizePool:       100000,
			TotalSpots:      1000,
			SpotsLeft:       1000,
			MaxTeamsPerUser: 6,
			IsGuaranteed:    true,
			Status:          contest.StatusOpen,
			PrizeBands: []contest.PrizeBand{
				{RankStart: 1, RankEnd: 1, Amount: 30000, Description: "Champion"},
				{RankStart: 2, RankEnd: 2, Amount: 20000, Description: "Runner up"},
				{RankStart: 3, RankEnd: 100, Amount: 510, Description: "Top 100"},
			},
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              "ct-idn-002",
			MatchID:         "vm-idn-001",
			Name:            "Head to Head",
			EntryFee:        100,
			PrizePool:       180,
			TotalSpots:      2,
			SpotsLeft:       2,
			MaxTeamsPerUser: 1,
			IsGuaranteed:    false,
			Status:          contest.StatusOpen,
			PrizeBands: []contest.PrizeBand{
				{RankStart: 1, RankEnd: 1, Amount: 180, Description: "Winner takes all"},
			},
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedContestTemplates() []contest.Template {
	return []contest.Template{
		{
			ID:              "tpl-mega",
			Name:            "Mega Contest",
			Description:     "Large guaranteed pool, top third paid",
			EntryFee:        49,
			PrizePool:       100000,
			MaxSpots:        1000,
			MaxTeamsPerUser: 6,
			WinnerPct:       30,
			IsGuaranteed:    true,
		},
		{
			ID:              "tpl-h2h",
			Name:            "Head to Head",
			Description:     "Two entries, winner takes all",
			EntryFee:        100,
			PrizePool:       180,
			MaxSpots:        2,
			MaxTeamsPerUser: 1,
			WinnerPct:       50,
			IsGuaranteed:    false,
		},
		{
			ID:              "tpl-practice",
			Name:            "Practice Contest",
			Description:     "Free entry warmup pool",
			EntryFee:        0,
			PrizePool:       0,
			MaxSpots:        100,
			MaxTeamsPerUser: 3,
			WinnerPct:       40,
			IsGuaranteed:    false,
		},
	}
}
