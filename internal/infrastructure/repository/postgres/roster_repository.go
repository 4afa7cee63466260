package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetMatch(ctx context.Context, matchID string) (roster.Match, bool, error) {
	const query = `
SELECT public_id, league_public_id, home_team_public_id, away_team_public_id, start_at, status, venue, round
FROM matches
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return roster.Match{}, false, nil
		}
		return roster.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *RosterRepository) ListMatches(ctx context.Context) ([]roster.Match, error) {
	const query = `
SELECT public_id, league_public_id, home_team_public_id, away_team_public_id, start_at, status, venue, round
FROM matches
WHERE deleted_at IS NULL
ORDER BY start_at`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]roster.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) ListEligiblePlayers(ctx context.Context, matchID string) ([]roster.PlayerSlot, error) {
	const query = `
SELECT player_public_id, match_public_id, name, category, credits, real_team_public_id, image_url, last_match_points, selection_pct
FROM match_player_slots
WHERE match_public_id = $1
  AND deleted_at IS NULL
ORDER BY credits DESC, player_public_id`

	var rows []playerSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select eligible players: %w", err)
	}

	out := make([]roster.PlayerSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerSlotFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetPlayersByIDs(ctx context.Context, matchID string, playerIDs []string) ([]roster.PlayerSlot, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	const query = `
SELECT player_public_id, match_public_id, name, category, credits, real_team_public_id, image_url, last_match_points, selection_pct
FROM match_player_slots
WHERE match_public_id = $1
  AND player_public_id = ANY($2)
  AND deleted_at IS NULL`

	var rows []playerSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID, pq.Array(playerIDs)); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]roster.PlayerSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerSlotFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) roster.Match {
	return roster.Match{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		StartAt:    row.StartAt,
		Status:     row.Status,
		Venue:      row.Venue,
		Round:      row.Round,
	}
}

func playerSlotFromRow(row playerSlotTableModel) roster.PlayerSlot {
	return roster.PlayerSlot{
		PlayerID:        row.PlayerID,
		MatchID:         row.MatchID,
		Name:            row.Name,
		Category:        roster.Category(row.Category),
		Credits:         row.Credits,
		RealTeamID:      row.RealTeamID,
		ImageURL:        row.ImageURL,
		LastMatchPoints: row.LastMatchPoints,
		SelectionPct:    row.SelectionPct,
	}
}
