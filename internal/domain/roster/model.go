package roster

import (
	"fmt"
	"time"
)

// Category represents volleyball role classifications used in fantasy rules.
type Category string

const (
	CategorySetter    Category = "setter"
	CategoryAttacker  Category = "attacker"
	CategoryBlocker   Category = "blocker"
	CategoryUniversal Category = "universal"
	CategoryLibero    Category = "libero"
)

var AllCategories = map[Category]struct{}{
	CategorySetter:    {},
	CategoryAttacker:  {},
	CategoryBlocker:   {},
	CategoryUniversal: {},
	CategoryLibero:    {},
}

// PlayerSlot is one selectable athlete in the eligible pool for a match.
// It is an immutable snapshot; the fantasy core never mutates it.
type PlayerSlot struct {
	PlayerID        string
	MatchID         string
	Name            string
	Category        Category
	Credits         int64
	RealTeamID      string
	ImageURL        string
	LastMatchPoints int
	SelectionPct    float64
}

func (p PlayerSlot) Validate() error {
	if p.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("player match id is required")
	}
	if _, ok := AllCategories[p.Category]; !ok {
		return fmt.Errorf("invalid player category: %s", p.Category)
	}
	if p.Credits <= 0 {
		return fmt.Errorf("player credits must be greater than zero")
	}
	if p.RealTeamID == "" {
		return fmt.Errorf("player real team id is required")
	}

	return nil
}

const (
	MatchStatusUpcoming = "upcoming"
	MatchStatusLive     = "live"
	MatchStatusFinished = "finished"
)

// Match is one real volleyball fixture contests are keyed to.
type Match struct {
	ID         string
	LeagueID   string
	HomeTeamID string
	AwayTeamID string
	StartAt    time.Time
	Status     string
	Venue      string
	Round      string
}

// Started reports whether the contest join window has closed.
func (m Match) Started(now time.Time) bool {
	return !m.StartAt.IsZero() && !now.Before(m.StartAt)
}
