package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

// StatProvider fetches the current per-set stat lines for one match from
// the external volleyball feed.
type StatProvider interface {
	FetchMatchStats(ctx context.Context, matchID string) ([]stats.Update, error)
}

// StatfeedPollResult summarizes one poll run across matches.
type StatfeedPollResult struct {
	Matches []MatchPollResult `json:"matches"`
}

type MatchPollResult struct {
	MatchID string `json:"matchId"`
	Players int    `json:"players"`
	Lines   int    `json:"lines"`
}

// StatfeedService pulls stat snapshots from the provider and pushes them
// through ingestion. It is driven by the internal poll job route.
type StatfeedService struct {
	provider     StatProvider
	ingestionSvc *StatsIngestionService
	rosterRepo   roster.Repository
	logger       *slog.Logger
}

func NewStatfeedService(
	provider StatProvider,
	ingestionSvc *StatsIngestionService,
	rosterRepo roster.Repository,
	logger *slog.Logger,
) *StatfeedService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatfeedService{
		provider:     provider,
		ingestionSvc: ingestionSvc,
		rosterRepo:   rosterRepo,
		logger:       logger,
	}
}

// PollMatch fetches the provider snapshot for one match and applies it.
func (s *StatfeedService) PollMatch(ctx context.Context, matchID string) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatfeedService.PollMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return IngestionResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return IngestionResult{}, fmt.Errorf("%w: stat provider is not configured", ErrDependencyUnavailable)
	}

	updates, err := s.provider.FetchMatchStats(ctx, matchID)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("%w: fetch match stats: %v", ErrDependencyUnavailable, err)
	}
	if len(updates) == 0 {
		return IngestionResult{}, nil
	}

	return s.ingestionSvc.ApplyUpdates(ctx, matchID, updates)
}

// PollLiveMatches polls every match currently marked live.
func (s *StatfeedService) PollLiveMatches(ctx context.Context) (StatfeedPollResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatfeedService.PollLiveMatches")
	defer span.End()

	matches, err := s.rosterRepo.ListMatches(ctx)
	if err != nil {
		return StatfeedPollResult{}, fmt.Errorf("list matches for statfeed poll: %w", err)
	}

	result := StatfeedPollResult{Matches: make([]MatchPollResult, 0)}
	for _, match := range matches {
		if match.Status != roster.MatchStatusLive {
			continue
		}

		applied, err := s.PollMatch(ctx, match.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "statfeed poll failed for match", "match_id", match.ID, "error", err)
			continue
		}
		result.Matches = append(result.Matches, MatchPollResult{
			MatchID: match.ID,
			Players: applied.Players,
			Lines:   applied.Lines,
		})
	}

	return result, nil
}
