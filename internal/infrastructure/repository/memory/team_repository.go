package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]fantasy.UserTeam
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]fantasy.UserTeam)}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasy.UserTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.items[teamID]
	if !ok {
		return fantasy.UserTeam{}, false, nil
	}
	return cloneTeam(team), true, nil
}

func (r *TeamRepository) ListByUserAndMatch(_ context.Context, userID, matchID string) ([]fantasy.UserTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.UserTeam, 0)
	for _, team := range r.items {
		if team.UserID == userID && team.MatchID == matchID {
			out = append(out, cloneTeam(team))
		}
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, team fantasy.UserTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[team.ID]; exists {
		return fmt.Errorf("team %s already exists", team.ID)
	}
	r.items[team.ID] = cloneTeam(team)
	return nil
}

func (r *TeamRepository) UpdateCaptaincy(_ context.Context, teamID, captainID, viceCaptainID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	team.CaptainID = captainID
	team.ViceCaptainID = viceCaptainID
	team.UpdatedAt = time.Now().UTC()
	r.items[teamID] = team
	return nil
}

func cloneTeam(t fantasy.UserTeam) fantasy.UserTeam {
	copied := t
	copied.Picks = append([]fantasy.TeamPick(nil), t.Picks...)
	return copied
}
