package stats

import (
	"fmt"
	"time"
)

// SetResult is the outcome of one set from the player's team perspective.
type SetResult string

const (
	SetResultWin  SetResult = "win"
	SetResultLoss SetResult = "loss"
	SetResultNone SetResult = "none"
)

var AllSetResults = map[SetResult]struct{}{
	SetResultWin:  {},
	SetResultLoss: {},
	SetResultNone: {},
}

// SetStat carries one player's accumulated events for a single set.
// The stat feed delivers the whole line at once; corrections replace
// the line rather than diffing it.
type SetStat struct {
	Set        int
	IsStarter  bool
	Result     SetResult
	Attacks    int
	Receptions int
	Aces       int
	Blocks     int
}

func (s SetStat) Validate() error {
	if s.Set < 1 {
		return fmt.Errorf("set index must be at least 1, got %d", s.Set)
	}
	if _, ok := AllSetResults[s.Result]; !ok {
		return fmt.Errorf("invalid set result: %s", s.Result)
	}
	if s.Attacks < 0 || s.Receptions < 0 || s.Aces < 0 || s.Blocks < 0 {
		return fmt.Errorf("set counters must not be negative")
	}

	return nil
}

// PlayerMatchStats is the per (player, match) stat accumulator. Sets are
// kept in ascending set order with at most one line per set.
type PlayerMatchStats struct {
	PlayerID  string
	MatchID   string
	Sets      []SetStat
	UpdatedAt time.Time
}

// Update is one stat feed delivery for a single (player, set) pair.
type Update struct {
	MatchID  string
	PlayerID string
	Line     SetStat
}

func (u Update) Validate() error {
	if u.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if u.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}

	return u.Line.Validate()
}
