package contest

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientSpots = errors.New("contest does not have enough spots left")
	ErrDuplicateEntry    = errors.New("team already entered in contest")
	ErrTeamLimitExceeded = errors.New("max teams per user exceeded for contest")
)

const (
	StatusOpen      = "open"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// PrizeBand maps a contiguous rank range to a prize.
type PrizeBand struct {
	RankStart   int
	RankEnd     int
	Amount      int64
	Description string
}

// Contains reports whether rank falls inside the band.
func (b PrizeBand) Contains(rank int) bool {
	return rank >= b.RankStart && rank <= b.RankEnd
}

// Contest is a finite-capacity entry pool for one match. SpotsLeft is the
// only field that mutates during the join window, and only downward.
type Contest struct {
	ID              string
	MatchID         string
	Name            string
	EntryFee        int64
	PrizePool       int64
	TotalSpots      int
	SpotsLeft       int
	MaxTeamsPerUser int
	IsGuaranteed    bool
	Status          string
	PrizeBands      []PrizeBand
	CreatedAt       time.Time
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.MatchID == "" {
		return fmt.Errorf("contest match id is required")
	}
	if c.TotalSpots <= 0 {
		return fmt.Errorf("contest total spots must be greater than zero")
	}
	if c.SpotsLeft < 0 || c.SpotsLeft > c.TotalSpots {
		return fmt.Errorf("contest spots left out of range: %d", c.SpotsLeft)
	}
	if c.MaxTeamsPerUser <= 0 {
		return fmt.Errorf("contest max teams per user must be greater than zero")
	}
	if err := validatePrizeBands(c.PrizeBands); err != nil {
		return err
	}

	return nil
}

func validatePrizeBands(bands []PrizeBand) error {
	lastEnd := 0
	for _, band := range bands {
		if band.RankStart < 1 || band.RankEnd < band.RankStart {
			return fmt.Errorf("invalid prize band range [%d, %d]", band.RankStart, band.RankEnd)
		}
		if band.RankStart <= lastEnd {
			return fmt.Errorf("prize bands must be ordered and non-overlapping at rank %d", band.RankStart)
		}
		lastEnd = band.RankEnd
	}
	return nil
}

// PrizeFor returns the prize band containing rank, if any.
func PrizeFor(rank int, bands []PrizeBand) (PrizeBand, bool) {
	for _, band := range bands {
		if band.Contains(rank) {
			return band, true
		}
	}
	return PrizeBand{}, false
}

// Entry links one saved team to one contest. TotalPoints and Rank are
// write-owned by the scoring/ranking pipeline.
type Entry struct {
	ContestID   string
	TeamID      string
	UserID      string
	JoinedAt    time.Time
	TotalPoints int
	Rank        int
}

// Template is an admin-defined contest blueprint stamped per match.
type Template struct {
	ID              string
	Name            string
	Description     string
	EntryFee        int64
	PrizePool       int64
	MaxSpots        int
	MaxTeamsPerUser int
	WinnerPct       float64
	IsGuaranteed    bool
}

func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.MaxSpots <= 0 {
		return fmt.Errorf("template max spots must be greater than zero")
	}
	if t.MaxTeamsPerUser <= 0 {
		return fmt.Errorf("template max teams per user must be greater than zero")
	}
	if t.WinnerPct <= 0 || t.WinnerPct > 100 {
		return fmt.Errorf("template winner percentage out of range: %f", t.WinnerPct)
	}

	return nil
}
