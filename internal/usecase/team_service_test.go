package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// vm-idn-001 starts 2026-02-14 19:00 UTC in the seed catalog.
var (
	beforeKickoff = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	afterKickoff  = time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC)
)

// validSeedPlayerIDs is a legal selection from the seeded vm-idn-001 pool:
// 87 credits, four Bhayangkara players, every required category covered.
func validSeedPlayerIDs() []string {
	return []string{"vp-set-01", "vp-atk-01", "vp-atk-02", "vp-blk-02", "vp-uni-02", "vp-lib-02"}
}

func newTeamFixture(t *testing.T) (*TeamService, *memory.TeamRepository) {
	t.Helper()

	rosterRepo := memory.NewRosterRepository(memory.SeedMatches(), memory.SeedPlayerSlots())
	teamRepo := memory.NewTeamRepository()
	service := NewTeamService(rosterRepo, teamRepo, fantasy.DefaultRules(), staticIDGenerator{id: "team-0001"}, testLogger())
	service.now = func() time.Time { return beforeKickoff }
	return service, teamRepo
}

func TestTeamServiceCreate(t *testing.T) {
	service, teamRepo := newTeamFixture(t)

	team, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       "vm-idn-001",
		Name:          "Smash Bros",
		PlayerIDs:     validSeedPlayerIDs(),
		CaptainID:     "vp-atk-02",
		ViceCaptainID: "vp-atk-01",
	})
	if err != nil {
		t.Fatalf("expected team to be created, got %v", err)
	}
	if team.ID != "team-0001" {
		t.Fatalf("expected generated team id, got %s", team.ID)
	}
	if len(team.Picks) != 6 {
		t.Fatalf("expected 6 resolved picks, got %d", len(team.Picks))
	}
	if team.Picks[0].Credits != 14 || team.Picks[0].RealTeamID != memory.TeamIDLavani {
		t.Fatalf("expected pick resolved from catalog, got %+v", team.Picks[0])
	}
	if !team.CreatedAt.Equal(beforeKickoff) {
		t.Fatalf("expected created at %v, got %v", beforeKickoff, team.CreatedAt)
	}

	saved, exists, err := teamRepo.GetByID(t.Context(), "team-0001")
	if err != nil || !exists {
		t.Fatalf("expected team persisted, exists=%v err=%v", exists, err)
	}
	if saved.CaptainID != "vp-atk-02" || saved.ViceCaptainID != "vp-atk-01" {
		t.Fatalf("unexpected captaincy on saved team: %+v", saved)
	}
}

func TestTeamServiceCreate_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateTeamInput, *TeamService)
		targetErr error
	}{
		{
			name: "match already started",
			mutate: func(_ *CreateTeamInput, service *TeamService) {
				service.now = func() time.Time { return afterKickoff }
			},
			targetErr: ErrMatchStarted,
		},
		{
			name: "unknown match",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.MatchID = "vm-unknown"
			},
			targetErr: ErrNotFound,
		},
		{
			name: "ineligible player",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.PlayerIDs[5] = "vp-ghost-99"
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "player listed twice",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.PlayerIDs[5] = "vp-set-01"
			},
			targetErr: fantasy.ErrDuplicatePlayer,
		},
		{
			name: "five players only",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.PlayerIDs = input.PlayerIDs[:5]
			},
			targetErr: fantasy.ErrWrongTeamSize,
		},
		{
			name: "too many from one real team",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				// Five Bhayangkara players.
				input.PlayerIDs = []string{"vp-set-02", "vp-atk-02", "vp-atk-04", "vp-blk-02", "vp-uni-02", "vp-set-01"}
			},
			targetErr: fantasy.ErrRealTeamCapExceeded,
		},
		{
			name: "captain not in selection",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.CaptainID = "vp-atk-03"
			},
			targetErr: fantasy.ErrCaptainInvalid,
		},
		{
			name: "missing user id",
			mutate: func(input *CreateTeamInput, _ *TeamService) {
				input.UserID = " "
			},
			targetErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTeamFixture(t)
			input := CreateTeamInput{
				UserID:        "user-1",
				MatchID:       "vm-idn-001",
				PlayerIDs:     validSeedPlayerIDs(),
				CaptainID:     "vp-atk-02",
				ViceCaptainID: "vp-atk-01",
			}
			tc.mutate(&input, service)

			_, err := service.Create(t.Context(), input)
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestTeamServiceTryPick(t *testing.T) {
	service, _ := newTeamFixture(t)

	t.Run("allows a legal next pick", func(t *testing.T) {
		err := service.TryPick(t.Context(), TryPickInput{
			MatchID:      "vm-idn-001",
			PlayerIDs:    []string{"vp-set-01", "vp-atk-01"},
			NextPlayerID: "vp-blk-02",
		})
		if err != nil {
			t.Fatalf("expected pick to be allowed, got %v", err)
		}
	})

	t.Run("rejects a seventh pick", func(t *testing.T) {
		err := service.TryPick(t.Context(), TryPickInput{
			MatchID:      "vm-idn-001",
			PlayerIDs:    validSeedPlayerIDs(),
			NextPlayerID: "vp-lib-01",
		})
		if !errors.Is(err, fantasy.ErrTeamFull) {
			t.Fatalf("expected ErrTeamFull, got %v", err)
		}
	})

	t.Run("rejects a duplicate pick", func(t *testing.T) {
		err := service.TryPick(t.Context(), TryPickInput{
			MatchID:      "vm-idn-001",
			PlayerIDs:    []string{"vp-set-01"},
			NextPlayerID: "vp-set-01",
		})
		if !errors.Is(err, fantasy.ErrDuplicatePlayer) {
			t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
		}
	})

	t.Run("rejects an ineligible player", func(t *testing.T) {
		err := service.TryPick(t.Context(), TryPickInput{
			MatchID:      "vm-idn-001",
			PlayerIDs:    []string{"vp-set-01"},
			NextPlayerID: "vp-ghost-99",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestTeamServiceUpdateCaptaincy(t *testing.T) {
	createTeam := func(t *testing.T, service *TeamService) fantasy.UserTeam {
		t.Helper()
		team, err := service.Create(t.Context(), CreateTeamInput{
			UserID:        "user-1",
			MatchID:       "vm-idn-001",
			PlayerIDs:     validSeedPlayerIDs(),
			CaptainID:     "vp-atk-02",
			ViceCaptainID: "vp-atk-01",
		})
		if err != nil {
			t.Fatalf("create fixture team: %v", err)
		}
		return team
	}

	t.Run("reassigns captain and vice before kickoff", func(t *testing.T) {
		service, teamRepo := newTeamFixture(t)
		team := createTeam(t, service)

		updated, err := service.UpdateCaptaincy(t.Context(), UpdateCaptaincyInput{
			UserID:        "user-1",
			TeamID:        team.ID,
			CaptainID:     "vp-set-01",
			ViceCaptainID: "vp-uni-02",
		})
		if err != nil {
			t.Fatalf("expected captaincy update, got %v", err)
		}
		if updated.CaptainID != "vp-set-01" || updated.ViceCaptainID != "vp-uni-02" {
			t.Fatalf("unexpected captaincy: %+v", updated)
		}

		saved, _, _ := teamRepo.GetByID(t.Context(), team.ID)
		if saved.CaptainID != "vp-set-01" {
			t.Fatalf("expected persisted captain, got %s", saved.CaptainID)
		}
	})

	t.Run("locks once the match starts", func(t *testing.T) {
		service, _ := newTeamFixture(t)
		team := createTeam(t, service)
		service.now = func() time.Time { return afterKickoff }

		_, err := service.UpdateCaptaincy(t.Context(), UpdateCaptaincyInput{
			UserID:        "user-1",
			TeamID:        team.ID,
			CaptainID:     "vp-set-01",
			ViceCaptainID: "vp-uni-02",
		})
		if !errors.Is(err, ErrMatchStarted) {
			t.Fatalf("expected ErrMatchStarted, got %v", err)
		}
	})

	t.Run("rejects another user's team", func(t *testing.T) {
		service, _ := newTeamFixture(t)
		team := createTeam(t, service)

		_, err := service.UpdateCaptaincy(t.Context(), UpdateCaptaincyInput{
			UserID:        "user-2",
			TeamID:        team.ID,
			CaptainID:     "vp-set-01",
			ViceCaptainID: "vp-uni-02",
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects unknown team", func(t *testing.T) {
		service, _ := newTeamFixture(t)

		_, err := service.UpdateCaptaincy(t.Context(), UpdateCaptaincyInput{
			UserID:        "user-1",
			TeamID:        "team-missing",
			CaptainID:     "vp-set-01",
			ViceCaptainID: "vp-uni-02",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects captain equal to vice", func(t *testing.T) {
		service, _ := newTeamFixture(t)
		team := createTeam(t, service)

		_, err := service.UpdateCaptaincy(t.Context(), UpdateCaptaincyInput{
			UserID:        "user-1",
			TeamID:        team.ID,
			CaptainID:     "vp-set-01",
			ViceCaptainID: "vp-set-01",
		})
		if !errors.Is(err, fantasy.ErrViceCaptainInvalid) {
			t.Fatalf("expected ErrViceCaptainInvalid, got %v", err)
		}
	})
}
