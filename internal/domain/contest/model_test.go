package contest

import (
	"strings"
	"testing"
)

func validContest() Contest {
	return Contest{
		ID:              "ct-1",
		MatchID:         "m-1",
		Name:            "Mega Contest",
		EntryFee:        49,
		PrizePool:       40000,
		TotalSpots:      1000,
		SpotsLeft:       1000,
		MaxTeamsPerUser: 6,
		Status:          StatusOpen,
		PrizeBands: []PrizeBand{
			{RankStart: 1, RankEnd: 1, Amount: 10000},
			{RankStart: 2, RankEnd: 3, Amount: 5000},
			{RankStart: 4, RankEnd: 100, Amount: 200},
		},
	}
}

func TestContestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Contest)
		wantErr string
	}{
		{
			name:   "valid contest",
			mutate: func(_ *Contest) {},
		},
		{
			name:    "missing id",
			mutate:  func(c *Contest) { c.ID = "" },
			wantErr: "contest id is required",
		},
		{
			name:    "missing match id",
			mutate:  func(c *Contest) { c.MatchID = "" },
			wantErr: "match id is required",
		},
		{
			name:    "zero total spots",
			mutate:  func(c *Contest) { c.TotalSpots = 0 },
			wantErr: "total spots",
		},
		{
			name:    "spots left above total",
			mutate:  func(c *Contest) { c.SpotsLeft = 1001 },
			wantErr: "spots left out of range",
		},
		{
			name:    "negative spots left",
			mutate:  func(c *Contest) { c.SpotsLeft = -1 },
			wantErr: "spots left out of range",
		},
		{
			name:    "zero max teams per user",
			mutate:  func(c *Contest) { c.MaxTeamsPerUser = 0 },
			wantErr: "max teams per user",
		},
		{
			name: "inverted prize band range",
			mutate: func(c *Contest) {
				c.PrizeBands[1] = PrizeBand{RankStart: 3, RankEnd: 2, Amount: 5000}
			},
			wantErr: "invalid prize band range",
		},
		{
			name: "overlapping prize bands",
			mutate: func(c *Contest) {
				c.PrizeBands[2] = PrizeBand{RankStart: 3, RankEnd: 100, Amount: 200}
			},
			wantErr: "ordered and non-overlapping",
		},
		{
			name: "unordered prize bands",
			mutate: func(c *Contest) {
				c.PrizeBands[0], c.PrizeBands[1] = c.PrizeBands[1], c.PrizeBands[0]
			},
			wantErr: "ordered and non-overlapping",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validContest()
			tc.mutate(&c)

			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid contest, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestPrizeFor(t *testing.T) {
	bands := validContest().PrizeBands

	band, ok := PrizeFor(1, bands)
	if !ok || band.Amount != 10000 {
		t.Fatalf("expected rank 1 to win 10000, got %+v ok=%v", band, ok)
	}

	band, ok = PrizeFor(3, bands)
	if !ok || band.Amount != 5000 {
		t.Fatalf("expected rank 3 to win 5000, got %+v ok=%v", band, ok)
	}

	band, ok = PrizeFor(100, bands)
	if !ok || band.Amount != 200 {
		t.Fatalf("expected rank 100 to win 200, got %+v ok=%v", band, ok)
	}

	if _, ok := PrizeFor(101, bands); ok {
		t.Fatal("expected rank 101 to win nothing")
	}

	if _, ok := PrizeFor(1, nil); ok {
		t.Fatal("expected no prize without bands")
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr bool
	}{
		{name: "valid template", mutate: func(_ *Template) {}},
		{name: "missing id", mutate: func(tpl *Template) { tpl.ID = "" }, wantErr: true},
		{name: "missing name", mutate: func(tpl *Template) { tpl.Name = "" }, wantErr: true},
		{name: "zero max spots", mutate: func(tpl *Template) { tpl.MaxSpots = 0 }, wantErr: true},
		{name: "zero max teams per user", mutate: func(tpl *Template) { tpl.MaxTeamsPerUser = 0 }, wantErr: true},
		{name: "zero winner pct", mutate: func(tpl *Template) { tpl.WinnerPct = 0 }, wantErr: true},
		{name: "winner pct above 100", mutate: func(tpl *Template) { tpl.WinnerPct = 100.5 }, wantErr: true},
		{name: "full winner pct", mutate: func(tpl *Template) { tpl.WinnerPct = 100 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tpl := Template{
				ID:              "tpl-1",
				Name:            "Head to Head",
				EntryFee:        99,
				PrizePool:       180,
				MaxSpots:        2,
				MaxTeamsPerUser: 1,
				WinnerPct:       50,
			}
			tc.mutate(&tpl)

			err := tpl.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid template, got %v", err)
			}
		})
	}
}
