package memory

import (
	"context"
	"sync"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	matches map[string]roster.Match
	players map[string][]roster.PlayerSlot
}

func NewRosterRepository(matches []roster.Match, players []roster.PlayerSlot) *RosterRepository {
	r := &RosterRepository{
		matches: make(map[string]roster.Match, len(matches)),
		players: make(map[string][]roster.PlayerSlot),
	}
	for _, match := range matches {
		r.matches[match.ID] = match
	}
	for _, slot := range players {
		r.players[slot.MatchID] = append(r.players[slot.MatchID], slot)
	}
	return r
}

func (r *RosterRepository) GetMatch(_ context.Context, matchID string) (roster.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, ok := r.matches[matchID]
	return match, ok, nil
}

func (r *RosterRepository) ListMatches(_ context.Context) ([]roster.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Match, 0, len(r.matches))
	for _, match := range r.matches {
		out = append(out, match)
	}
	return out, nil
}

func (r *RosterRepository) ListEligiblePlayers(_ context.Context, matchID string) ([]roster.PlayerSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.PlayerSlot(nil), r.players[matchID]...), nil
}

func (r *RosterRepository) GetPlayersByIDs(_ context.Context, matchID string, playerIDs []string) ([]roster.PlayerSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slotByID := make(map[string]roster.PlayerSlot, len(r.players[matchID]))
	for _, slot := range r.players[matchID] {
		slotByID[slot.PlayerID] = slot
	}

	out := make([]roster.PlayerSlot, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if slot, ok := slotByID[playerID]; ok {
			out = append(out, slot)
		}
	}
	return out, nil
}
