package fantasy

import (
	"errors"
	"fmt"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

var (
	ErrTeamFull            = errors.New("team already has maximum players")
	ErrDuplicatePlayer     = errors.New("duplicate player in team")
	ErrBudgetExceeded      = errors.New("credit budget exceeded")
	ErrRealTeamCapExceeded = errors.New("max players from same real team exceeded")
	ErrUnknownCategory     = errors.New("unknown player category")
	ErrWrongTeamSize       = errors.New("invalid team size")
	ErrCategoryUnmet       = errors.New("minimum category requirement not met")
	ErrCaptainInvalid      = errors.New("invalid captain selection")
	ErrViceCaptainInvalid  = errors.New("invalid vice-captain selection")
)

// Rules stores team composition validation parameters.
type Rules struct {
	TeamSize       int
	CreditCap      int64
	MaxPerRealTeam int
	MinByCategory  map[roster.Category]int
}

// DefaultRules returns the standard 6-a-side contest ruleset. Libero
// carries no minimum; any category may fill the remaining two slots.
func DefaultRules() Rules {
	return Rules{
		TeamSize:       6,
		CreditCap:      100,
		MaxPerRealTeam: 4,
		MinByCategory: map[roster.Category]int{
			roster.CategorySetter:    1,
			roster.CategoryAttacker:  1,
			roster.CategoryBlocker:   1,
			roster.CategoryUniversal: 1,
		},
	}
}

// ValidatePick checks whether next can be added to the current picks.
// It enforces only the constraints decidable on a partial team, so the
// selection UI can give can-select feedback before all six are chosen.
func ValidatePick(picks []TeamPick, next TeamPick, rules Rules) error {
	if len(picks) >= rules.TeamSize {
		return fmt.Errorf("%w: max=%d", ErrTeamFull, rules.TeamSize)
	}
	if _, ok := roster.AllCategories[next.Category]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, next.Category)
	}
	if next.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if next.RealTeamID == "" {
		return fmt.Errorf("real team id is required for player %s", next.PlayerID)
	}
	if next.Credits <= 0 {
		return fmt.Errorf("player credits must be greater than zero: %s", next.PlayerID)
	}

	sameRealTeam := 0
	var totalCredits int64
	for _, pick := range picks {
		if pick.PlayerID == next.PlayerID {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, next.PlayerID)
		}
		if pick.RealTeamID == next.RealTeamID {
			sameRealTeam++
		}
		totalCredits += pick.Credits
	}

	if sameRealTeam+1 > rules.MaxPerRealTeam {
		return fmt.Errorf("%w: team=%s max=%d", ErrRealTeamCapExceeded, next.RealTeamID, rules.MaxPerRealTeam)
	}
	if totalCredits+next.Credits > rules.CreditCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.CreditCap, totalCredits+next.Credits)
	}

	return nil
}

// ValidateTeam is the authoritative final check before a team is persisted.
func ValidateTeam(team UserTeam, rules Rules) error {
	if len(team.Picks) != rules.TeamSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongTeamSize, rules.TeamSize, len(team.Picks))
	}

	realTeamCounter := make(map[string]int)
	categoryCounter := make(map[roster.Category]int)
	playerSet := make(map[string]struct{}, len(team.Picks))
	var totalCredits int64

	for _, pick := range team.Picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := roster.AllCategories[pick.Category]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, pick.Category)
		}
		if pick.RealTeamID == "" {
			return fmt.Errorf("real team id is required for player %s", pick.PlayerID)
		}
		if pick.Credits <= 0 {
			return fmt.Errorf("player credits must be greater than zero: %s", pick.PlayerID)
		}

		realTeamCounter[pick.RealTeamID]++
		if realTeamCounter[pick.RealTeamID] > rules.MaxPerRealTeam {
			return fmt.Errorf("%w: team=%s max=%d", ErrRealTeamCapExceeded, pick.RealTeamID, rules.MaxPerRealTeam)
		}

		categoryCounter[pick.Category]++
		totalCredits += pick.Credits
	}

	if totalCredits > rules.CreditCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.CreditCap, totalCredits)
	}

	for category, minRequired := range rules.MinByCategory {
		if categoryCounter[category] < minRequired {
			return fmt.Errorf("%w: category=%s min=%d current=%d", ErrCategoryUnmet, category, minRequired, categoryCounter[category])
		}
	}

	if team.CaptainID == "" || !team.HasPlayer(team.CaptainID) {
		return fmt.Errorf("%w: %s is not in the team", ErrCaptainInvalid, team.CaptainID)
	}
	if team.ViceCaptainID == "" || !team.HasPlayer(team.ViceCaptainID) {
		return fmt.Errorf("%w: %s is not in the team", ErrViceCaptainInvalid, team.ViceCaptainID)
	}
	if team.CaptainID == team.ViceCaptainID {
		return fmt.Errorf("%w: captain and vice-captain must differ", ErrViceCaptainInvalid)
	}

	return nil
}
