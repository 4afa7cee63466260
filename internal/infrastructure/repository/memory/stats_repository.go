package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	items map[string]stats.PlayerMatchStats
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{items: make(map[string]stats.PlayerMatchStats)}
}

func (r *StatsRepository) GetByPlayerAndMatch(_ context.Context, playerID, matchID string) (stats.PlayerMatchStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.items[statsKey(playerID, matchID)]
	if !ok {
		return stats.PlayerMatchStats{}, false, nil
	}
	return cloneStats(row), true, nil
}

func (r *StatsRepository) ListByMatch(_ context.Context, matchID string) ([]stats.PlayerMatchStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerMatchStats, 0)
	for _, row := range r.items {
		if row.MatchID == matchID {
			out = append(out, cloneStats(row))
		}
	}
	return out, nil
}

func (r *StatsRepository) UpsertSetLine(_ context.Context, update stats.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statsKey(update.PlayerID, update.MatchID)
	row, ok := r.items[key]
	if !ok {
		row = stats.PlayerMatchStats{PlayerID: update.PlayerID, MatchID: update.MatchID}
	}

	replaced := false
	for idx := range row.Sets {
		if row.Sets[idx].Set == update.Line.Set {
			row.Sets[idx] = update.Line
			replaced = true
			break
		}
	}
	if !replaced {
		row.Sets = append(row.Sets, update.Line)
		sort.Slice(row.Sets, func(i, j int) bool {
			return row.Sets[i].Set < row.Sets[j].Set
		})
	}
	row.UpdatedAt = time.Now().UTC()

	r.items[key] = row
	return nil
}

func statsKey(playerID, matchID string) string {
	return playerID + "::" + matchID
}

func cloneStats(s stats.PlayerMatchStats) stats.PlayerMatchStats {
	copied := s
	copied.Sets = append([]stats.SetStat(nil), s.Sets...)
	return copied
}
