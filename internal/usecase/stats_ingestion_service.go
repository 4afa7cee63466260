package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

const defaultIngestionWorkers = 8

// IngestionResult summarizes one stat feed delivery.
type IngestionResult struct {
	Players int `json:"players"`
	Lines   int `json:"lines"`
}

// StatsIngestionService applies live stat deliveries. Each delivery is a
// full replace of the (player, set) line, so re-delivering a corrected
// line needs no diffing and no special casing.
type StatsIngestionService struct {
	statsRepo   stats.Repository
	scoringSvc  *ScoringService
	logger      *slog.Logger
	workerCount int
}

func NewStatsIngestionService(
	statsRepo stats.Repository,
	scoringSvc *ScoringService,
	logger *slog.Logger,
) *StatsIngestionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsIngestionService{
		statsRepo:   statsRepo,
		scoringSvc:  scoringSvc,
		logger:      logger,
		workerCount: defaultIngestionWorkers,
	}
}

// ApplyUpdates validates and persists a batch of per-set stat lines, then
// triggers a rescore of every contest on the match. Per-player writes fan
// out over a worker pool; lines for the same player stay ordered.
func (s *StatsIngestionService) ApplyUpdates(ctx context.Context, matchID string, updates []stats.Update) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsIngestionService.ApplyUpdates")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return IngestionResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(updates) == 0 {
		return IngestionResult{}, fmt.Errorf("%w: at least one stat update is required", ErrInvalidInput)
	}

	byPlayer := make(map[string][]stats.Update)
	for idx, update := range updates {
		update.MatchID = matchID
		update.PlayerID = strings.TrimSpace(update.PlayerID)
		if err := update.Validate(); err != nil {
			return IngestionResult{}, fmt.Errorf("%w: update[%d]: %v", ErrInvalidInput, idx, err)
		}
		byPlayer[update.PlayerID] = append(byPlayer[update.PlayerID], update)
	}

	workerCount := s.workerCount
	if workerCount > len(byPlayer) {
		workerCount = len(byPlayer)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("create ingestion worker pool: %w", err)
	}
	defer workerPool.Release()

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	recordErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	for _, playerUpdates := range byPlayer {
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			for _, update := range playerUpdates {
				if err := s.statsRepo.UpsertSetLine(ctx, update); err != nil {
					recordErr(fmt.Errorf("upsert set line player=%s set=%d: %w", update.PlayerID, update.Line.Set, err))
					return
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			recordErr(fmt.Errorf("submit ingestion task: %w", submitErr))
		}
	}
	wg.Wait()

	if firstErr != nil {
		return IngestionResult{}, firstErr
	}

	if err := s.scoringSvc.RescoreMatch(ctx, matchID); err != nil {
		return IngestionResult{}, err
	}

	s.logger.InfoContext(ctx, "stat updates applied",
		"match_id", matchID,
		"players", len(byPlayer),
		"lines", len(updates),
	)
	return IngestionResult{Players: len(byPlayer), Lines: len(updates)}, nil
}
