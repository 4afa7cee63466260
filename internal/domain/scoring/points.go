// Package scoring converts accumulated player stats into fantasy points.
// Everything here is a pure function of its inputs: re-invoking after a
// stat correction yields the corrected total with no memory of prior runs.
package scoring

import (
	"math"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
)

const (
	pointsPerSetStarter    = 6
	pointsPerSetSubstitute = 3
	pointsPerSetWon        = 6
	pointsPerSetLost       = -3
	pointsPerAttack        = 3
	pointsPerReception     = 3
	pointsPerAce           = 20
	pointsPerBlock         = 20

	captainMultiplier     = 2.0
	viceCaptainMultiplier = 1.5
)

// ScorePlayer computes a player's fantasy point total for a match.
func ScorePlayer(playerStats stats.PlayerMatchStats) int {
	points := 0
	for _, line := range playerStats.Sets {
		if line.IsStarter {
			points += pointsPerSetStarter
		} else {
			points += pointsPerSetSubstitute
		}

		switch line.Result {
		case stats.SetResultWin:
			points += pointsPerSetWon
		case stats.SetResultLoss:
			points += pointsPerSetLost
		}

		points += line.Attacks * pointsPerAttack
		points += line.Receptions * pointsPerReception
		points += line.Aces * pointsPerAce
		points += line.Blocks * pointsPerBlock
	}

	return points
}

// ScoreTeam computes the team total with captain and vice-captain
// multipliers. A missing stats record scores zero rather than erroring.
// Rounding happens once on the summed total, never per player, so the
// vice-captain's half points cannot compound.
func ScoreTeam(team fantasy.UserTeam, statsByPlayer map[string]stats.PlayerMatchStats) int {
	total := 0.0
	for _, pick := range team.Picks {
		base := float64(ScorePlayer(statsByPlayer[pick.PlayerID]))
		switch pick.PlayerID {
		case team.CaptainID:
			total += base * captainMultiplier
		case team.ViceCaptainID:
			total += base * viceCaptainMultiplier
		default:
			total += base
		}
	}

	return int(math.Round(total))
}
