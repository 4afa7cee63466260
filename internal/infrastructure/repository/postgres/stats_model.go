package postgres

import "time"

type setStatTableModel struct {
	ID         int64     `db:"id"`
	PlayerID   string    `db:"player_public_id"`
	MatchID    string    `db:"match_public_id"`
	SetNumber  int       `db:"set_number"`
	IsStarter  bool      `db:"is_starter"`
	SetResult  string    `db:"set_result"`
	Attacks    int       `db:"attacks"`
	Receptions int       `db:"receptions"`
	Aces       int       `db:"aces"`
	Blocks     int       `db:"blocks"`
	UpdatedAt  time.Time `db:"updated_at"`
}
