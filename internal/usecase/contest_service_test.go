package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
)

type contestFixture struct {
	service     *ContestService
	contestRepo *memory.ContestRepository
	teamRepo    *memory.TeamRepository
}

func newContestFixture(t *testing.T) contestFixture {
	t.Helper()

	rosterRepo := memory.NewRosterRepository(memory.SeedMatches(), memory.SeedPlayerSlots())
	teamRepo := memory.NewTeamRepository()
	contestRepo := memory.NewContestRepository(memory.SeedContests(), memory.SeedContestTemplates())
	service := NewContestService(contestRepo, contestRepo, teamRepo, rosterRepo, staticIDGenerator{id: "ct-new-0001"}, testLogger())
	service.now = func() time.Time { return beforeKickoff }

	return contestFixture{service: service, contestRepo: contestRepo, teamRepo: teamRepo}
}

func (f contestFixture) seedTeam(t *testing.T, teamID, userID, matchID string) {
	t.Helper()

	err := f.teamRepo.Create(t.Context(), fantasy.UserTeam{
		ID:      teamID,
		UserID:  userID,
		MatchID: matchID,
		Picks: []fantasy.TeamPick{
			{PlayerID: "vp-atk-02", RealTeamID: memory.TeamIDBhayangkara, Category: "attacker", Credits: 19},
		},
		CaptainID:     "vp-atk-02",
		ViceCaptainID: "vp-atk-02",
	})
	require.NoError(t, err)
}

func (f contestFixture) spotsLeft(t *testing.T, contestID string) int {
	t.Helper()

	item, exists, err := f.contestRepo.Get(t.Context(), contestID)
	require.NoError(t, err)
	require.True(t, exists)
	return item.SpotsLeft
}

func TestContestServiceJoin(t *testing.T) {
	t.Run("reserves one spot per team", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")
		f.seedTeam(t, "team-b", "user-1", "vm-idn-001")

		entries, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a", "team-b"},
		})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 998, f.spotsLeft(t, "ct-idn-001"))

		saved, err := f.contestRepo.ListEntries(t.Context(), "ct-idn-001")
		require.NoError(t, err)
		assert.Len(t, saved, 2)
	})

	t.Run("fills all teams or none when spots run out", func(t *testing.T) {
		f := newContestFixture(t)
		require.NoError(t, f.contestRepo.Create(t.Context(), contest.Contest{
			ID:              "ct-small",
			MatchID:         "vm-idn-001",
			Name:            "Two Spot Pool",
			TotalSpots:      2,
			SpotsLeft:       2,
			MaxTeamsPerUser: 5,
			Status:          contest.StatusOpen,
		}))
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")
		f.seedTeam(t, "team-b", "user-1", "vm-idn-001")
		f.seedTeam(t, "team-c", "user-1", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-small",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a", "team-b", "team-c"},
		})
		require.ErrorIs(t, err, contest.ErrInsufficientSpots)

		assert.Equal(t, 2, f.spotsLeft(t, "ct-small"))
		saved, err := f.contestRepo.ListEntries(t.Context(), "ct-small")
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("enforces the per user team cap", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")
		f.seedTeam(t, "team-b", "user-1", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-002",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.NoError(t, err)

		_, err = f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-002",
			UserID:    "user-1",
			TeamIDs:   []string{"team-b"},
		})
		require.ErrorIs(t, err, contest.ErrTeamLimitExceeded)
		assert.Equal(t, 1, f.spotsLeft(t, "ct-idn-002"))
	})

	t.Run("rejects a team that already entered", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.NoError(t, err)

		_, err = f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.ErrorIs(t, err, contest.ErrDuplicateEntry)
		assert.Equal(t, 999, f.spotsLeft(t, "ct-idn-001"))
	})

	t.Run("rejects the same team listed twice in one request", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a", "team-a"},
		})
		require.ErrorIs(t, err, contest.ErrDuplicateEntry)
		assert.Equal(t, 1000, f.spotsLeft(t, "ct-idn-001"))
	})

	t.Run("rejects another user's team", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-2", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("rejects a team built for a different match", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-002")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("closes once the match starts", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")
		f.service.now = func() time.Time { return afterKickoff }

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-idn-001",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.ErrorIs(t, err, ErrMatchStarted)
	})

	t.Run("rejects an unknown contest", func(t *testing.T) {
		f := newContestFixture(t)
		f.seedTeam(t, "team-a", "user-1", "vm-idn-001")

		_, err := f.service.Join(t.Context(), JoinContestInput{
			ContestID: "ct-missing",
			UserID:    "user-1",
			TeamIDs:   []string{"team-a"},
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestContestServiceCreateFromTemplate(t *testing.T) {
	t.Run("stamps a mega contest with split prize bands", func(t *testing.T) {
		f := newContestFixture(t)

		item, err := f.service.CreateFromTemplate(t.Context(), CreateContestInput{
			MatchID:    "vm-idn-002",
			TemplateID: "tpl-mega",
		})
		require.NoError(t, err)

		assert.Equal(t, "ct-new-0001", item.ID)
		assert.Equal(t, "vm-idn-002", item.MatchID)
		assert.Equal(t, "Mega Contest", item.Name)
		assert.Equal(t, 1000, item.TotalSpots)
		assert.Equal(t, 1000, item.SpotsLeft)
		assert.Equal(t, contest.StatusOpen, item.Status)

		// 30% of 1000 spots win: 30% / 20% to the top two, the rest split
		// evenly across ranks 3..300.
		require.Len(t, item.PrizeBands, 3)
		assert.Equal(t, contest.PrizeBand{RankStart: 1, RankEnd: 1, Amount: 30000}, item.PrizeBands[0])
		assert.Equal(t, contest.PrizeBand{RankStart: 2, RankEnd: 2, Amount: 20000}, item.PrizeBands[1])
		assert.Equal(t, contest.PrizeBand{RankStart: 3, RankEnd: 300, Amount: 167}, item.PrizeBands[2])

		_, exists, err := f.contestRepo.Get(t.Context(), "ct-new-0001")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("head to head pays the full pool to one winner", func(t *testing.T) {
		f := newContestFixture(t)

		item, err := f.service.CreateFromTemplate(t.Context(), CreateContestInput{
			MatchID:    "vm-idn-002",
			TemplateID: "tpl-h2h",
			Name:       "Friday H2H",
		})
		require.NoError(t, err)

		assert.Equal(t, "Friday H2H", item.Name)
		require.Len(t, item.PrizeBands, 1)
		assert.Equal(t, contest.PrizeBand{RankStart: 1, RankEnd: 1, Amount: 180}, item.PrizeBands[0])
	})

	t.Run("free practice contest carries no prize bands", func(t *testing.T) {
		f := newContestFixture(t)

		item, err := f.service.CreateFromTemplate(t.Context(), CreateContestInput{
			MatchID:    "vm-idn-002",
			TemplateID: "tpl-practice",
		})
		require.NoError(t, err)
		assert.Empty(t, item.PrizeBands)
	})

	t.Run("rejects an unknown template", func(t *testing.T) {
		f := newContestFixture(t)

		_, err := f.service.CreateFromTemplate(t.Context(), CreateContestInput{
			MatchID:    "vm-idn-002",
			TemplateID: "tpl-missing",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects a started match", func(t *testing.T) {
		f := newContestFixture(t)
		f.service.now = func() time.Time { return afterKickoff }

		_, err := f.service.CreateFromTemplate(t.Context(), CreateContestInput{
			MatchID:    "vm-idn-001",
			TemplateID: "tpl-mega",
		})
		require.ErrorIs(t, err, ErrMatchStarted)
	})
}

func TestDerivePrizeBands(t *testing.T) {
	t.Run("no pool no bands", func(t *testing.T) {
		assert.Nil(t, derivePrizeBands(0, 100, 40))
	})

	t.Run("two winners split sixty forty", func(t *testing.T) {
		bands := derivePrizeBands(1000, 10, 20)
		require.Len(t, bands, 2)
		assert.Equal(t, int64(600), bands[0].Amount)
		assert.Equal(t, int64(400), bands[1].Amount)
	})

	t.Run("winner count never drops below one", func(t *testing.T) {
		bands := derivePrizeBands(500, 100, 0.1)
		require.Len(t, bands, 1)
		assert.Equal(t, int64(500), bands[0].Amount)
	})
}

func TestContestServiceTemplates(t *testing.T) {
	t.Run("upsert then read back", func(t *testing.T) {
		f := newContestFixture(t)

		err := f.service.UpsertTemplate(t.Context(), contest.Template{
			ID:              "tpl-winner-takes-all",
			Name:            "Winner Takes All",
			EntryFee:        25,
			PrizePool:       2000,
			MaxSpots:        100,
			MaxTeamsPerUser: 2,
			WinnerPct:       1,
		})
		require.NoError(t, err)

		templates, err := f.service.ListTemplates(t.Context())
		require.NoError(t, err)
		assert.Len(t, templates, 4)
	})

	t.Run("rejects an invalid template", func(t *testing.T) {
		f := newContestFixture(t)

		err := f.service.UpsertTemplate(t.Context(), contest.Template{
			ID:        "tpl-broken",
			Name:      "",
			MaxSpots:  10,
			WinnerPct: 50,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
