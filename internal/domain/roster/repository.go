package roster

import "context"

// Repository exposes read-only roster catalog data for the fantasy core.
type Repository interface {
	GetMatch(ctx context.Context, matchID string) (Match, bool, error)
	ListMatches(ctx context.Context) ([]Match, error)
	ListEligiblePlayers(ctx context.Context, matchID string) ([]PlayerSlot, error)
	GetPlayersByIDs(ctx context.Context, matchID string, playerIDs []string) ([]PlayerSlot, error)
}
