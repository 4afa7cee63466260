package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

// RosterService serves the read-only match and player catalog.
type RosterService struct {
	rosterRepo roster.Repository
	logger     *slog.Logger
}

func NewRosterService(rosterRepo roster.Repository, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		logger:     logger,
	}
}

func (s *RosterService) ListMatches(ctx context.Context) ([]roster.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListMatches")
	defer span.End()

	matches, err := s.rosterRepo.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *RosterService) GetMatch(ctx context.Context, matchID string) (roster.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetMatch")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return roster.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	match, exists, err := s.rosterRepo.GetMatch(ctx, matchID)
	if err != nil {
		return roster.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return roster.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return match, nil
}

func (s *RosterService) ListEligiblePlayers(ctx context.Context, matchID string) ([]roster.PlayerSlot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListEligiblePlayers")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	players, err := s.rosterRepo.ListEligiblePlayers(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list eligible players: %w", err)
	}
	return players, nil
}
