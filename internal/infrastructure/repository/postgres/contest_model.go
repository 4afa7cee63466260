package postgres

import "time"

type contestTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	MatchID         string     `db:"match_public_id"`
	Name            string     `db:"name"`
	EntryFee        int64      `db:"entry_fee"`
	PrizePool       int64      `db:"prize_pool"`
	TotalSpots      int        `db:"total_spots"`
	SpotsLeft       int        `db:"spots_left"`
	MaxTeamsPerUser int        `db:"max_teams_per_user"`
	IsGuaranteed    bool       `db:"is_guaranteed"`
	Status          string     `db:"status"`
	PrizeBands      []byte     `db:"prize_bands"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type contestEntryTableModel struct {
	ID          int64     `db:"id"`
	ContestID   string    `db:"contest_public_id"`
	TeamID      string    `db:"team_public_id"`
	UserID      string    `db:"user_id"`
	JoinedAt    time.Time `db:"joined_at"`
	TotalPoints int       `db:"total_points"`
	Rank        int       `db:"rank"`
}

type contestTemplateTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	EntryFee        int64      `db:"entry_fee"`
	PrizePool       int64      `db:"prize_pool"`
	MaxSpots        int        `db:"max_spots"`
	MaxTeamsPerUser int        `db:"max_teams_per_user"`
	WinnerPct       float64    `db:"winner_pct"`
	IsGuaranteed    bool       `db:"is_guaranteed"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type prizeBandJSON struct {
	RankStart   int    `json:"rankStart"`
	RankEnd     int    `json:"rankEnd"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}
