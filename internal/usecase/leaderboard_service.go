package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
)

// LeaderboardRow is one ranked entry with its mapped prize, if any.
type LeaderboardRow struct {
	Entry contest.Entry
	Prize *contest.PrizeBand
}

// LeaderboardService produces the ranked board for a contest. Ranking is
// a pure recomputation over current entry totals; it is safe to call
// repeatedly and concurrently with scoring updates.
type LeaderboardService struct {
	contestRepo contest.Repository
	scoringSvc  *ScoringService
	logger      *slog.Logger
}

func NewLeaderboardService(
	contestRepo contest.Repository,
	scoringSvc *ScoringService,
	logger *slog.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaderboardService{
		contestRepo: contestRepo,
		scoringSvc:  scoringSvc,
		logger:      logger,
	}
}

// Rank returns the contest leaderboard in final order with ranks assigned
// 1..n and prizes mapped from the contest's prize bands.
func (s *LeaderboardService) Rank(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Rank")
	defer span.End()

	if strings.TrimSpace(contestID) == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.Get(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest for leaderboard: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}

	if err := s.scoringSvc.EnsureContestUpToDate(ctx, contestID); err != nil {
		return nil, err
	}

	entries, err := s.contestRepo.ListEntries(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list entries for leaderboard: %w", err)
	}

	ordered := OrderEntries(entries)
	rows := make([]LeaderboardRow, 0, len(ordered))
	for idx, entry := range ordered {
		entry.Rank = idx + 1
		row := LeaderboardRow{Entry: entry}
		if band, ok := contest.PrizeFor(entry.Rank, item.PrizeBands); ok {
			row.Prize = &band
		}
		rows = append(rows, row)
	}

	return rows, nil
}
