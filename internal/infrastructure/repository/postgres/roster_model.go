package postgres

import "time"

type matchTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	LeagueID   string     `db:"league_public_id"`
	HomeTeamID string     `db:"home_team_public_id"`
	AwayTeamID string     `db:"away_team_public_id"`
	StartAt    time.Time  `db:"start_at"`
	Status     string     `db:"status"`
	Venue      string     `db:"venue"`
	Round      string     `db:"round"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type playerSlotTableModel struct {
	ID              int64      `db:"id"`
	PlayerID        string     `db:"player_public_id"`
	MatchID         string     `db:"match_public_id"`
	Name            string     `db:"name"`
	Category        string     `db:"category"`
	Credits         int64      `db:"credits"`
	RealTeamID      string     `db:"real_team_public_id"`
	ImageURL        string     `db:"image_url"`
	LastMatchPoints int        `db:"last_match_points"`
	SelectionPct    float64    `db:"selection_pct"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}
