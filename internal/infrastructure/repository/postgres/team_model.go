package postgres

import "time"

type userTeamTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	UserID        string     `db:"user_id"`
	MatchID       string     `db:"match_public_id"`
	Name          string     `db:"name"`
	CaptainID     string     `db:"captain_player_id"`
	ViceCaptainID string     `db:"vice_captain_player_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type userTeamPickTableModel struct {
	ID         int64      `db:"id"`
	TeamID     string     `db:"team_public_id"`
	PlayerID   string     `db:"player_public_id"`
	RealTeamID string     `db:"real_team_public_id"`
	Category   string     `db:"category"`
	Credits    int64      `db:"credits"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}
