package fantasy

import (
	"fmt"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/roster"
)

// TeamPick represents one selected player in a user's fantasy team.
type TeamPick struct {
	PlayerID   string
	RealTeamID string
	Category   roster.Category
	Credits    int64
}

// UserTeam contains a user's team composition for one match.
// Immutable after creation except captain/vice-captain re-selection
// before the match starts.
type UserTeam struct {
	ID            string
	UserID        string
	MatchID       string
	Name          string
	Picks         []TeamPick
	CaptainID     string
	ViceCaptainID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t UserTeam) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if len(t.Picks) == 0 {
		return fmt.Errorf("team picks are required")
	}

	return nil
}

// HasPlayer reports whether playerID is one of the team's picks.
func (t UserTeam) HasPlayer(playerID string) bool {
	for _, pick := range t.Picks {
		if pick.PlayerID == playerID {
			return true
		}
	}
	return false
}
