package stats

import "context"

// Repository persists per-set player stat lines. UpsertSetLine replaces
// the whole (player, match, set) line; there is no delta path.
type Repository interface {
	GetByPlayerAndMatch(ctx context.Context, playerID, matchID string) (PlayerMatchStats, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]PlayerMatchStats, error)
	UpsertSetLine(ctx context.Context, update Update) error
}
