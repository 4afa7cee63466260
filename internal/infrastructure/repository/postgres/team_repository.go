package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (fantasy.UserTeam, bool, error) {
	const query = `
SELECT public_id, user_id, match_public_id, name, captain_player_id, vice_captain_player_id, created_at, updated_at
FROM user_teams
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row userTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return fantasy.UserTeam{}, false, nil
		}
		return fantasy.UserTeam{}, false, fmt.Errorf("get user team: %w", err)
	}

	picks, err := r.picksByTeamIDs(ctx, []string{row.PublicID})
	if err != nil {
		return fantasy.UserTeam{}, false, err
	}

	return userTeamFromRow(row, picks[row.PublicID]), true, nil
}

func (r *TeamRepository) ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]fantasy.UserTeam, error) {
	const query = `
SELECT public_id, user_id, match_public_id, name, captain_player_id, vice_captain_player_id, created_at, updated_at
FROM user_teams
WHERE user_id = $1
  AND match_public_id = $2
  AND deleted_at IS NULL
ORDER BY created_at`

	var rows []userTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID, matchID); err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	teamIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.PublicID)
	}
	picks, err := r.picksByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]fantasy.UserTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, userTeamFromRow(row, picks[row.PublicID]))
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, team fantasy.UserTeam) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertTeamQuery = `
INSERT INTO user_teams (public_id, user_id, match_public_id, name, captain_player_id, vice_captain_player_id)
VALUES (:public_id, :user_id, :match_public_id, :name, :captain_player_id, :vice_captain_player_id)`

	teamSQL, teamArgs, err := sqlx.Named(insertTeamQuery, map[string]any{
		"public_id":              team.ID,
		"user_id":                team.UserID,
		"match_public_id":        team.MatchID,
		"name":                   team.Name,
		"captain_player_id":      team.CaptainID,
		"vice_captain_player_id": team.ViceCaptainID,
	})
	if err != nil {
		return fmt.Errorf("bind insert user team query: %w", err)
	}
	teamSQL = tx.Rebind(teamSQL)
	if _, err := tx.ExecContext(ctx, teamSQL, teamArgs...); err != nil {
		return fmt.Errorf("insert user team: %w", err)
	}

	const insertPickQuery = `
INSERT INTO user_team_picks (team_public_id, player_public_id, real_team_public_id, category, credits)
VALUES (:team_public_id, :player_public_id, :real_team_public_id, :category, :credits)`

	for _, pick := range team.Picks {
		pickSQL, pickArgs, err := sqlx.Named(insertPickQuery, map[string]any{
			"team_public_id":      team.ID,
			"player_public_id":    pick.PlayerID,
			"real_team_public_id": pick.RealTeamID,
			"category":            string(pick.Category),
			"credits":             pick.Credits,
		})
		if err != nil {
			return fmt.Errorf("bind insert team pick player=%s query: %w", pick.PlayerID, err)
		}
		pickSQL = tx.Rebind(pickSQL)
		if _, err := tx.ExecContext(ctx, pickSQL, pickArgs...); err != nil {
			return fmt.Errorf("insert team pick player=%s: %w", pick.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team create tx: %w", err)
	}

	return nil
}

func (r *TeamRepository) UpdateCaptaincy(ctx context.Context, teamID, captainID, viceCaptainID string) error {
	const query = `
UPDATE user_teams
SET captain_player_id = $2,
    vice_captain_player_id = $3,
    updated_at = NOW()
WHERE public_id = $1
  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, teamID, captainID, viceCaptainID)
	if err != nil {
		return fmt.Errorf("update team captaincy: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team captaincy rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team captaincy: team %s not found", teamID)
	}

	return nil
}

func (r *TeamRepository) picksByTeamIDs(ctx context.Context, teamIDs []string) (map[string][]fantasy.TeamPick, error) {
	const query = `
SELECT team_public_id, player_public_id, real_team_public_id, category, credits
FROM user_team_picks
WHERE team_public_id = ANY($1)
  AND deleted_at IS NULL
ORDER BY id`

	var rows []userTeamPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(teamIDs)); err != nil {
		return nil, fmt.Errorf("list team picks: %w", err)
	}

	out := make(map[string][]fantasy.TeamPick, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], fantasy.TeamPick{
			PlayerID:   row.PlayerID,
			RealTeamID: row.RealTeamID,
			Category:   roster.Category(row.Category),
			Credits:    row.Credits,
		})
	}
	return out, nil
}

func userTeamFromRow(row userTeamTableModel, picks []fantasy.TeamPick) fantasy.UserTeam {
	return fantasy.UserTeam{
		ID:            row.PublicID,
		UserID:        row.UserID,
		MatchID:       row.MatchID,
		Name:          row.Name,
		Picks:         picks,
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
