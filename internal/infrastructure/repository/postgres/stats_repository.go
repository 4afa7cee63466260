package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByPlayerAndMatch(ctx context.Context, playerID, matchID string) (stats.PlayerMatchStats, bool, error) {
	const query = `
SELECT player_public_id, match_public_id, set_number, is_starter, set_result, attacks, receptions, aces, blocks, updated_at
FROM player_match_set_stats
WHERE player_public_id = $1
  AND match_public_id = $2
ORDER BY set_number`

	var rows []setStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID, matchID); err != nil {
		return stats.PlayerMatchStats{}, false, fmt.Errorf("select player set stats: %w", err)
	}
	if len(rows) == 0 {
		return stats.PlayerMatchStats{}, false, nil
	}

	return playerStatsFromRows(playerID, matchID, rows), true, nil
}

func (r *StatsRepository) ListByMatch(ctx context.Context, matchID string) ([]stats.PlayerMatchStats, error) {
	const query = `
SELECT player_public_id, match_public_id, set_number, is_starter, set_result, attacks, receptions, aces, blocks, updated_at
FROM player_match_set_stats
WHERE match_public_id = $1
ORDER BY player_public_id, set_number`

	var rows []setStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select match set stats: %w", err)
	}

	var out []stats.PlayerMatchStats
	var current []setStatTableModel
	for _, row := range rows {
		if len(current) > 0 && current[0].PlayerID != row.PlayerID {
			out = append(out, playerStatsFromRows(current[0].PlayerID, matchID, current))
			current = current[:0]
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		out = append(out, playerStatsFromRows(current[0].PlayerID, matchID, current))
	}
	return out, nil
}

// UpsertSetLine replaces the full stat line for one (player, match, set)
// key. Feed deliveries carry absolute counts, so the previous line is
// overwritten rather than incremented.
func (r *StatsRepository) UpsertSetLine(ctx context.Context, update stats.Update) error {
	const query = `
INSERT INTO player_match_set_stats (
    player_public_id,
    match_public_id,
    set_number,
    is_starter,
    set_result,
    attacks,
    receptions,
    aces,
    blocks
) VALUES (:player_public_id, :match_public_id, :set_number, :is_starter, :set_result, :attacks, :receptions, :aces, :blocks)
ON CONFLICT (player_public_id, match_public_id, set_number)
DO UPDATE SET
    is_starter = EXCLUDED.is_starter,
    set_result = EXCLUDED.set_result,
    attacks = EXCLUDED.attacks,
    receptions = EXCLUDED.receptions,
    aces = EXCLUDED.aces,
    blocks = EXCLUDED.blocks,
    updated_at = NOW()`

	upsertSQL, args, err := sqlx.Named(query, map[string]any{
		"player_public_id": update.PlayerID,
		"match_public_id":  update.MatchID,
		"set_number":       update.Line.Set,
		"is_starter":       update.Line.IsStarter,
		"set_result":       string(update.Line.Result),
		"attacks":          update.Line.Attacks,
		"receptions":       update.Line.Receptions,
		"aces":             update.Line.Aces,
		"blocks":           update.Line.Blocks,
	})
	if err != nil {
		return fmt.Errorf("bind upsert set stat query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)
	if _, err := r.db.ExecContext(ctx, upsertSQL, args...); err != nil {
		return fmt.Errorf("upsert set stat player=%s set=%d: %w", update.PlayerID, update.Line.Set, err)
	}

	return nil
}

func playerStatsFromRows(playerID, matchID string, rows []setStatTableModel) stats.PlayerMatchStats {
	out := stats.PlayerMatchStats{PlayerID: playerID, MatchID: matchID}
	for _, row := range rows {
		out.Sets = append(out.Sets, stats.SetStat{
			Set:        row.SetNumber,
			IsStarter:  row.IsStarter,
			Result:     stats.SetResult(row.SetResult),
			Attacks:    row.Attacks,
			Receptions: row.Receptions,
			Aces:       row.Aces,
			Blocks:     row.Blocks,
		})
		if row.UpdatedAt.After(out.UpdatedAt) {
			out.UpdatedAt = row.UpdatedAt
		}
	}
	return out
}
