package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/scoring"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
	"github.com/primev/fantasy-volleyball/internal/platform/resilience"
)

const (
	defaultScoringEnsureInterval = 15 * time.Second
	rescoreWorkerCount           = 4
)

// PlayerScore is one row of a match scoreboard.
type PlayerScore struct {
	PlayerID string
	Points   int
}

// ScoringService recomputes entry totals from the current stat snapshot
// and reassigns ranks. Scoring holds no incremental state: a stat
// correction simply produces a different snapshot on the next pass.
type ScoringService struct {
	contestRepo contest.Repository
	teamRepo    fantasy.Repository
	statsRepo   stats.Repository
	logger      *slog.Logger
	now         func() time.Time

	ensureFlight   resilience.SingleFlight
	ensureMu       sync.Mutex
	lastEnsureAt   map[string]time.Time
	ensureInterval time.Duration
}

func NewScoringService(
	contestRepo contest.Repository,
	teamRepo fantasy.Repository,
	statsRepo stats.Repository,
	logger *slog.Logger,
) *ScoringService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoringService{
		contestRepo:    contestRepo,
		teamRepo:       teamRepo,
		statsRepo:      statsRepo,
		logger:         logger,
		now:            time.Now,
		lastEnsureAt:   make(map[string]time.Time),
		ensureInterval: defaultScoringEnsureInterval,
	}
}

// EnsureContestUpToDate rescores the contest at most once per ensure
// interval, deduplicating concurrent callers through a single flight.
func (s *ScoringService) EnsureContestUpToDate(ctx context.Context, contestID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EnsureContestUpToDate")
	defer span.End()

	now := s.now().UTC()
	if s.shouldSkipEnsure(contestID, now) {
		return nil
	}

	key := "scoring:ensure:" + contestID
	_, err, _ := s.ensureFlight.Do(key, func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipEnsure(contestID, runNow) {
			return nil, nil
		}

		if runErr := s.RescoreContest(ctx, contestID); runErr != nil {
			return nil, runErr
		}
		s.markEnsure(contestID, runNow)
		return nil, nil
	})
	return err
}

// RescoreContest recomputes every entry's total from the current stats
// and reassigns ranks unconditionally.
func (s *ScoringService) RescoreContest(ctx context.Context, contestID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreContest")
	defer span.End()

	item, exists, err := s.contestRepo.Get(ctx, contestID)
	if err != nil {
		return fmt.Errorf("get contest for rescore: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}

	entries, err := s.contestRepo.ListEntries(ctx, contestID)
	if err != nil {
		return fmt.Errorf("list entries for rescore: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	statsByPlayer, err := s.matchStatsByPlayer(ctx, item.MatchID)
	if err != nil {
		return err
	}

	pointsByTeam := make(map[string]int, len(entries))
	var pointsMu sync.Mutex

	workers := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(rescoreWorkerCount)
	for _, entry := range entries {
		workers.Go(func(ctx context.Context) error {
			team, teamExists, err := s.teamRepo.GetByID(ctx, entry.TeamID)
			if err != nil {
				return fmt.Errorf("get team %s for rescore: %w", entry.TeamID, err)
			}
			if !teamExists {
				// Entries outlive nothing; a missing team is a data bug,
				// score it zero instead of wedging the whole contest.
				s.logger.WarnContext(ctx, "entry references missing team", "contest_id", contestID, "team_id", entry.TeamID)
				return nil
			}

			total := scoring.ScoreTeam(team, statsByPlayer)
			if total == entry.TotalPoints {
				return nil
			}
			if err := s.contestRepo.UpdateEntryPoints(ctx, contestID, entry.TeamID, total); err != nil {
				return fmt.Errorf("update entry points team=%s: %w", entry.TeamID, err)
			}

			pointsMu.Lock()
			pointsByTeam[entry.TeamID] = total
			pointsMu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return err
	}

	for i := range entries {
		if total, ok := pointsByTeam[entries[i].TeamID]; ok {
			entries[i].TotalPoints = total
		}
	}

	ordered := OrderEntries(entries)
	rankByTeam := make(map[string]int, len(ordered))
	for idx, entry := range ordered {
		rankByTeam[entry.TeamID] = idx + 1
	}
	if err := s.contestRepo.UpdateEntryRanks(ctx, contestID, rankByTeam); err != nil {
		return fmt.Errorf("update entry ranks: %w", err)
	}

	return nil
}

// RescoreMatch rescores every contest attached to a match; used after a
// stat feed delivery.
func (s *ScoringService) RescoreMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreMatch")
	defer span.End()

	contests, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list contests for match rescore: %w", err)
	}

	for _, item := range contests {
		if err := s.RescoreContest(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// ScoreboardForMatch computes current per-player points for a match.
func (s *ScoringService) ScoreboardForMatch(ctx context.Context, matchID string) ([]PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreboardForMatch")
	defer span.End()

	statsByPlayer, err := s.matchStatsByPlayer(ctx, matchID)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerScore, 0, len(statsByPlayer))
	for playerID, playerStats := range statsByPlayer {
		out = append(out, PlayerScore{PlayerID: playerID, Points: scoring.ScorePlayer(playerStats)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (s *ScoringService) matchStatsByPlayer(ctx context.Context, matchID string) (map[string]stats.PlayerMatchStats, error) {
	rows, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list stats by match: %w", err)
	}

	byPlayer := make(map[string]stats.PlayerMatchStats, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}
	return byPlayer, nil
}

func (s *ScoringService) shouldSkipEnsure(contestID string, now time.Time) bool {
	if s.ensureInterval <= 0 || contestID == "" {
		return false
	}
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	last, ok := s.lastEnsureAt[contestID]
	if !ok || last.IsZero() {
		return false
	}
	return now.Sub(last) < s.ensureInterval
}

func (s *ScoringService) markEnsure(contestID string, now time.Time) {
	if contestID == "" {
		return
	}
	s.ensureMu.Lock()
	s.lastEnsureAt[contestID] = now
	s.ensureMu.Unlock()
}

// OrderEntries sorts contest entries into leaderboard order: points
// descending, then earliest join, then team id as the final total
// tie-break so ranks are always distinct and deterministic.
func OrderEntries(entries []contest.Entry) []contest.Entry {
	ordered := append([]contest.Entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalPoints != ordered[j].TotalPoints {
			return ordered[i].TotalPoints > ordered[j].TotalPoints
		}
		if !ordered[i].JoinedAt.Equal(ordered[j].JoinedAt) {
			return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
		}
		return ordered[i].TeamID < ordered[j].TeamID
	})
	return ordered
}
