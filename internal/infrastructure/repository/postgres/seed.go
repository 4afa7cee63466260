package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo fixtures into an empty database. It is a
// no-op once any match exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, league_public_id, home_team_public_id, away_team_public_id, start_at, status, venue, round)
VALUES (:public_id, :league_public_id, :home_team_public_id, :away_team_public_id, :start_at, :status, :venue, :round)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"league_public_id":    m.LeagueID,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"start_at":            m.StartAt,
			"status":              m.Status,
			"venue":               m.Venue,
			"round":               m.Round,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayerSlots() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO match_player_slots (player_public_id, match_public_id, name, category, credits, real_team_public_id, image_url, last_match_points, selection_pct)
VALUES (:player_public_id, :match_public_id, :name, :category, :credits, :real_team_public_id, :image_url, :last_match_points, :selection_pct)
ON CONFLICT (player_public_id, match_public_id) DO NOTHING`, map[string]any{
			"player_public_id":    p.PlayerID,
			"match_public_id":     p.MatchID,
			"name":                p.Name,
			"category":            string(p.Category),
			"credits":             p.Credits,
			"real_team_public_id": p.RealTeamID,
			"image_url":           p.ImageURL,
			"last_match_points":   p.LastMatchPoints,
			"selection_pct":       p.SelectionPct,
		})
		if err != nil {
			return fmt.Errorf("bind seed player slot %s query: %w", p.PlayerID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player slot %s: %w", p.PlayerID, err)
		}
	}

	for _, c := range memory.SeedContests() {
		bands, err := marshalPrizeBands(c.PrizeBands)
		if err != nil {
			return fmt.Errorf("seed contest %s: %w", c.ID, err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO contests (public_id, match_public_id, name, entry_fee, prize_pool, total_spots, spots_left, max_teams_per_user, is_guaranteed, status, prize_bands)
VALUES (:public_id, :match_public_id, :name, :entry_fee, :prize_pool, :total_spots, :spots_left, :max_teams_per_user, :is_guaranteed, :status, :prize_bands)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":          c.ID,
			"match_public_id":    c.MatchID,
			"name":               c.Name,
			"entry_fee":          c.EntryFee,
			"prize_pool":         c.PrizePool,
			"total_spots":        c.TotalSpots,
			"spots_left":         c.SpotsLeft,
			"max_teams_per_user": c.MaxTeamsPerUser,
			"is_guaranteed":      c.IsGuaranteed,
			"status":             c.Status,
			"prize_bands":        bands,
		})
		if err != nil {
			return fmt.Errorf("bind seed contest %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed contest %s: %w", c.ID, err)
		}
	}

	for _, t := range memory.SeedContestTemplates() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO contest_templates (public_id, name, description, entry_fee, prize_pool, max_spots, max_teams_per_user, winner_pct, is_guaranteed)
VALUES (:public_id, :name, :description, :entry_fee, :prize_pool, :max_spots, :max_teams_per_user, :winner_pct, :is_guaranteed)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":          t.ID,
			"name":               t.Name,
			"description":        t.Description,
			"entry_fee":          t.EntryFee,
			"prize_pool":         t.PrizePool,
			"max_spots":          t.MaxSpots,
			"max_teams_per_user": t.MaxTeamsPerUser,
			"winner_pct":         t.WinnerPct,
			"is_guaranteed":      t.IsGuaranteed,
		})
		if err != nil {
			return fmt.Errorf("bind seed contest template %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed contest template %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
