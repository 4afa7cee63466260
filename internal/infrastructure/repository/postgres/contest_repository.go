package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) Get(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	const query = `
SELECT public_id, match_public_id, name, entry_fee, prize_pool, total_spots, spots_left,
       max_teams_per_user, is_guaranteed, status, prize_bands, created_at
FROM contests
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, contestID); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest: %w", err)
	}

	item, err := contestFromRow(row)
	if err != nil {
		return contest.Contest{}, false, err
	}
	return item, true, nil
}

func (r *ContestRepository) ListByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	const query = `
SELECT public_id, match_public_id, name, entry_fee, prize_pool, total_spots, spots_left,
       max_teams_per_user, is_guaranteed, status, prize_bands, created_at
FROM contests
WHERE match_public_id = $1
  AND deleted_at IS NULL
ORDER BY prize_pool DESC, public_id`

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select contests by match: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		item, err := contestFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ContestRepository) Create(ctx context.Context, item contest.Contest) error {
	const query = `
INSERT INTO contests (
    public_id,
    match_public_id,
    name,
    entry_fee,
    prize_pool,
    total_spots,
    spots_left,
    max_teams_per_user,
    is_guaranteed,
    status,
    prize_bands
) VALUES (:public_id, :match_public_id, :name, :entry_fee, :prize_pool, :total_spots, :spots_left,
          :max_teams_per_user, :is_guaranteed, :status, :prize_bands)`

	bands, err := marshalPrizeBands(item.PrizeBands)
	if err != nil {
		return err
	}

	insertSQL, args, err := sqlx.Named(query, map[string]any{
		"public_id":          item.ID,
		"match_public_id":    item.MatchID,
		"name":               item.Name,
		"entry_fee":          item.EntryFee,
		"prize_pool":         item.PrizePool,
		"total_spots":        item.TotalSpots,
		"spots_left":         item.SpotsLeft,
		"max_teams_per_user": item.MaxTeamsPerUser,
		"is_guaranteed":      item.IsGuaranteed,
		"status":             item.Status,
		"prize_bands":        bands,
	})
	if err != nil {
		return fmt.Errorf("bind insert contest query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)
	if _, err := r.db.ExecContext(ctx, insertSQL, args...); err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}

	return nil
}

// Join inserts every entry and decrements spots_left in one transaction.
// The contest row is locked up front so concurrent joins serialize on the
// spot check; a unique index on (contest_public_id, team_public_id) backs
// the duplicate check.
func (r *ContestRepository) Join(ctx context.Context, contestID string, maxTeamsPerUser int, entries []contest.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("join requires at least one entry")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for contest join: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const lockQuery = `
SELECT spots_left
FROM contests
WHERE public_id = $1
  AND deleted_at IS NULL
FOR UPDATE`

	var spotsLeft int
	if err := tx.GetContext(ctx, &spotsLeft, lockQuery, contestID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("contest %s not found", contestID)
		}
		return fmt.Errorf("lock contest for join: %w", err)
	}
	if spotsLeft < len(entries) {
		return fmt.Errorf("%w: left=%d requested=%d", contest.ErrInsufficientSpots, spotsLeft, len(entries))
	}

	const countQuery = `
SELECT COUNT(*)
FROM contest_entries
WHERE contest_public_id = $1
  AND user_id = $2`

	userID := entries[0].UserID
	var alreadyJoined int
	if err := tx.GetContext(ctx, &alreadyJoined, countQuery, contestID, userID); err != nil {
		return fmt.Errorf("count user entries for join: %w", err)
	}
	if alreadyJoined+len(entries) > maxTeamsPerUser {
		return fmt.Errorf("%w: user=%s max=%d joined=%d requested=%d",
			contest.ErrTeamLimitExceeded, userID, maxTeamsPerUser, alreadyJoined, len(entries))
	}

	const insertQuery = `
INSERT INTO contest_entries (contest_public_id, team_public_id, user_id, joined_at)
VALUES (:contest_public_id, :team_public_id, :user_id, :joined_at)`

	for _, entry := range entries {
		insertSQL, args, err := sqlx.Named(insertQuery, map[string]any{
			"contest_public_id": contestID,
			"team_public_id":    entry.TeamID,
			"user_id":           entry.UserID,
			"joined_at":         entry.JoinedAt,
		})
		if err != nil {
			return fmt.Errorf("bind insert contest entry team=%s query: %w", entry.TeamID, err)
		}
		insertSQL = tx.Rebind(insertSQL)
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: team=%s", contest.ErrDuplicateEntry, entry.TeamID)
			}
			return fmt.Errorf("insert contest entry team=%s: %w", entry.TeamID, err)
		}
	}

	const decrementQuery = `
UPDATE contests
SET spots_left = spots_left - $2,
    updated_at = NOW()
WHERE public_id = $1
  AND spots_left >= $2`

	res, err := tx.ExecContext(ctx, decrementQuery, contestID, len(entries))
	if err != nil {
		return fmt.Errorf("decrement contest spots: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement contest spots rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: left=%d requested=%d", contest.ErrInsufficientSpots, spotsLeft, len(entries))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit contest join tx: %w", err)
	}

	return nil
}

func (r *ContestRepository) ListEntries(ctx context.Context, contestID string) ([]contest.Entry, error) {
	const query = `
SELECT contest_public_id, team_public_id, user_id, joined_at, total_points, rank
FROM contest_entries
WHERE contest_public_id = $1
ORDER BY rank, joined_at`

	var rows []contestEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, contestID); err != nil {
		return nil, fmt.Errorf("select contest entries: %w", err)
	}

	return entriesFromRows(rows), nil
}

func (r *ContestRepository) ListEntriesByMatch(ctx context.Context, matchID string) ([]contest.Entry, error) {
	const query = `
SELECT e.contest_public_id, e.team_public_id, e.user_id, e.joined_at, e.total_points, e.rank
FROM contest_entries e
JOIN contests c ON c.public_id = e.contest_public_id
WHERE c.match_public_id = $1
  AND c.deleted_at IS NULL
ORDER BY e.contest_public_id, e.rank`

	var rows []contestEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select contest entries by match: %w", err)
	}

	return entriesFromRows(rows), nil
}

func (r *ContestRepository) UpdateEntryPoints(ctx context.Context, contestID, teamID string, totalPoints int) error {
	const query = `
UPDATE contest_entries
SET total_points = $3
WHERE contest_public_id = $1
  AND team_public_id = $2`

	res, err := r.db.ExecContext(ctx, query, contestID, teamID, totalPoints)
	if err != nil {
		return fmt.Errorf("update entry points: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update entry points: entry contest=%s team=%s not found", contestID, teamID)
	}

	return nil
}

func (r *ContestRepository) UpdateEntryRanks(ctx context.Context, contestID string, rankByTeamID map[string]int) error {
	if len(rankByTeamID) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for rank update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
UPDATE contest_entries
SET rank = $3
WHERE contest_public_id = $1
  AND team_public_id = $2`

	for teamID, rank := range rankByTeamID {
		if _, err := tx.ExecContext(ctx, query, contestID, teamID, rank); err != nil {
			return fmt.Errorf("update entry rank team=%s: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rank update tx: %w", err)
	}

	return nil
}

func (r *ContestRepository) GetTemplate(ctx context.Context, templateID string) (contest.Template, bool, error) {
	const query = `
SELECT public_id, name, description, entry_fee, prize_pool, max_spots, max_teams_per_user, winner_pct, is_guaranteed
FROM contest_templates
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row contestTemplateTableModel
	if err := r.db.GetContext(ctx, &row, query, templateID); err != nil {
		if isNotFound(err) {
			return contest.Template{}, false, nil
		}
		return contest.Template{}, false, fmt.Errorf("get contest template: %w", err)
	}

	return templateFromRow(row), true, nil
}

func (r *ContestRepository) ListTemplates(ctx context.Context) ([]contest.Template, error) {
	const query = `
SELECT public_id, name, description, entry_fee, prize_pool, max_spots, max_teams_per_user, winner_pct, is_guaranteed
FROM contest_templates
WHERE deleted_at IS NULL
ORDER BY id`

	var rows []contestTemplateTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select contest templates: %w", err)
	}

	out := make([]contest.Template, 0, len(rows))
	for _, row := range rows {
		out = append(out, templateFromRow(row))
	}
	return out, nil
}

func (r *ContestRepository) UpsertTemplate(ctx context.Context, item contest.Template) error {
	const query = `
INSERT INTO contest_templates (
    public_id,
    name,
    description,
    entry_fee,
    prize_pool,
    max_spots,
    max_teams_per_user,
    winner_pct,
    is_guaranteed
) VALUES (:public_id, :name, :description, :entry_fee, :prize_pool, :max_spots, :max_teams_per_user, :winner_pct, :is_guaranteed)
ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    entry_fee = EXCLUDED.entry_fee,
    prize_pool = EXCLUDED.prize_pool,
    max_spots = EXCLUDED.max_spots,
    max_teams_per_user = EXCLUDED.max_teams_per_user,
    winner_pct = EXCLUDED.winner_pct,
    is_guaranteed = EXCLUDED.is_guaranteed,
    updated_at = NOW()`

	upsertSQL, args, err := sqlx.Named(query, map[string]any{
		"public_id":          item.ID,
		"name":               item.Name,
		"description":        item.Description,
		"entry_fee":          item.EntryFee,
		"prize_pool":         item.PrizePool,
		"max_spots":          item.MaxSpots,
		"max_teams_per_user": item.MaxTeamsPerUser,
		"winner_pct":         item.WinnerPct,
		"is_guaranteed":      item.IsGuaranteed,
	})
	if err != nil {
		return fmt.Errorf("bind upsert contest template query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)
	if _, err := r.db.ExecContext(ctx, upsertSQL, args...); err != nil {
		return fmt.Errorf("upsert contest template: %w", err)
	}

	return nil
}

func contestFromRow(row contestTableModel) (contest.Contest, error) {
	bands, err := unmarshalPrizeBands(row.PrizeBands)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("decode prize bands for contest %s: %w", row.PublicID, err)
	}

	return contest.Contest{
		ID:              row.PublicID,
		MatchID:         row.MatchID,
		Name:            row.Name,
		EntryFee:        row.EntryFee,
		PrizePool:       row.PrizePool,
		TotalSpots:      row.TotalSpots,
		SpotsLeft:       row.SpotsLeft,
		MaxTeamsPerUser: row.MaxTeamsPerUser,
		IsGuaranteed:    row.IsGuaranteed,
		Status:          row.Status,
		PrizeBands:      bands,
		CreatedAt:       row.CreatedAt,
	}, nil
}

func templateFromRow(row contestTemplateTableModel) contest.Template {
	return contest.Template{
		ID:              row.PublicID,
		Name:            row.Name,
		Description:     row.Description,
		EntryFee:        row.EntryFee,
		PrizePool:       row.PrizePool,
		MaxSpots:        row.MaxSpots,
		MaxTeamsPerUser: row.MaxTeamsPerUser,
		WinnerPct:       row.WinnerPct,
		IsGuaranteed:    row.IsGuaranteed,
	}
}

func entriesFromRows(rows []contestEntryTableModel) []contest.Entry {
	out := make([]contest.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, contest.Entry{
			ContestID:   row.ContestID,
			TeamID:      row.TeamID,
			UserID:      row.UserID,
			JoinedAt:    row.JoinedAt,
			TotalPoints: row.TotalPoints,
			Rank:        row.Rank,
		})
	}
	return out
}

func marshalPrizeBands(bands []contest.PrizeBand) ([]byte, error) {
	encoded := make([]prizeBandJSON, 0, len(bands))
	for _, band := range bands {
		encoded = append(encoded, prizeBandJSON{
			RankStart:   band.RankStart,
			RankEnd:     band.RankEnd,
			Amount:      band.Amount,
			Description: band.Description,
		})
	}
	raw, err := sonic.Marshal(encoded)
	if err != nil {
		return nil, fmt.Errorf("encode prize bands: %w", err)
	}
	return raw, nil
}

func unmarshalPrizeBands(raw []byte) ([]contest.PrizeBand, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var decoded []prizeBandJSON
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	out := make([]contest.PrizeBand, 0, len(decoded))
	for _, band := range decoded {
		out = append(out, contest.PrizeBand{
			RankStart:   band.RankStart,
			RankEnd:     band.RankEnd,
			Amount:      band.Amount,
			Description: band.Description,
		})
	}
	return out, nil
}
