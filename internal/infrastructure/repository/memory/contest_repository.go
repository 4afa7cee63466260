package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
)

type ContestRepository struct {
	mu        sync.RWMutex
	contests  map[string]contest.Contest
	entries   map[string]map[string]contest.Entry
	templates map[string]contest.Template
}

func NewContestRepository(seedContests []contest.Contest, seedTemplates []contest.Template) *ContestRepository {
	r := &ContestRepository{
		contests:  make(map[string]contest.Contest, len(seedContests)),
		entries:   make(map[string]map[string]contest.Entry),
		templates: make(map[string]contest.Template, len(seedTemplates)),
	}
	for _, item := range seedContests {
		r.contests[item.ID] = cloneContest(item)
	}
	for _, item := range seedTemplates {
		r.templates[item.ID] = item
	}
	return r
}

func (r *ContestRepository) Get(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.contests[contestID]
	if !ok {
		return contest.Contest{}, false, nil
	}
	return cloneContest(item), true, nil
}

func (r *ContestRepository) ListByMatch(_ context.Context, matchID string) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0)
	for _, item := range r.contests {
		if item.MatchID == matchID {
			out = append(out, cloneContest(item))
		}
	}
	return out, nil
}

func (r *ContestRepository) Create(_ context.Context, item contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contests[item.ID]; exists {
		return fmt.Errorf("contest %s already exists", item.ID)
	}
	r.contests[item.ID] = cloneContest(item)
	return nil
}

// Join performs the check-and-decrement-and-insert sequence under one
// lock, mirroring the transactional contract of the postgres repository:
// either every entry is inserted and SpotsLeft drops by len(entries), or
// nothing changes.
func (r *ContestRepository) Join(_ context.Context, contestID string, maxTeamsPerUser int, newEntries []contest.Entry) error {
	if len(newEntries) == 0 {
		return fmt.Errorf("join requires at least one entry")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.contests[contestID]
	if !ok {
		return fmt.Errorf("contest %s not found", contestID)
	}

	existing := r.entries[contestID]
	userID := newEntries[0].UserID
	alreadyJoined := 0
	for _, entry := range existing {
		if entry.UserID == userID {
			alreadyJoined++
		}
	}
	if alreadyJoined+len(newEntries) > maxTeamsPerUser {
		return fmt.Errorf("%w: user=%s max=%d joined=%d requested=%d",
			contest.ErrTeamLimitExceeded, userID, maxTeamsPerUser, alreadyJoined, len(newEntries))
	}

	for _, entry := range newEntries {
		if _, exists := existing[entry.TeamID]; exists {
			return fmt.Errorf("%w: team=%s", contest.ErrDuplicateEntry, entry.TeamID)
		}
	}

	if item.SpotsLeft < len(newEntries) {
		return fmt.Errorf("%w: left=%d requested=%d", contest.ErrInsufficientSpots, item.SpotsLeft, len(newEntries))
	}

	if existing == nil {
		existing = make(map[string]contest.Entry)
		r.entries[contestID] = existing
	}
	for _, entry := range newEntries {
		existing[entry.TeamID] = entry
	}
	item.SpotsLeft -= len(newEntries)
	r.contests[contestID] = item

	return nil
}

func (r *ContestRepository) ListEntries(_ context.Context, contestID string) ([]contest.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Entry, 0, len(r.entries[contestID]))
	for _, entry := range r.entries[contestID] {
		out = append(out, entry)
	}
	return out, nil
}

func (r *ContestRepository) ListEntriesByMatch(_ context.Context, matchID string) ([]contest.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Entry, 0)
	for contestID, entries := range r.entries {
		item, ok := r.contests[contestID]
		if !ok || item.MatchID != matchID {
			continue
		}
		for _, entry := range entries {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *ContestRepository) UpdateEntryPoints(_ context.Context, contestID, teamID string, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[contestID][teamID]
	if !ok {
		return fmt.Errorf("entry contest=%s team=%s not found", contestID, teamID)
	}
	entry.TotalPoints = totalPoints
	r.entries[contestID][teamID] = entry
	return nil
}

func (r *ContestRepository) UpdateEntryRanks(_ context.Context, contestID string, rankByTeamID map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for teamID, rank := range rankByTeamID {
		entry, ok := r.entries[contestID][teamID]
		if !ok {
			return fmt.Errorf("entry contest=%s team=%s not found", contestID, teamID)
		}
		entry.Rank = rank
		r.entries[contestID][teamID] = entry
	}
	return nil
}

func (r *ContestRepository) GetTemplate(_ context.Context, templateID string) (contest.Template, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.templates[templateID]
	return item, ok, nil
}

func (r *ContestRepository) ListTemplates(_ context.Context) ([]contest.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Template, 0, len(r.templates))
	for _, item := range r.templates {
		out = append(out, item)
	}
	return out, nil
}

func (r *ContestRepository) UpsertTemplate(_ context.Context, item contest.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[item.ID] = item
	return nil
}

func cloneContest(c contest.Contest) contest.Contest {
	copied := c
	copied.PrizeBands = append([]contest.PrizeBand(nil), c.PrizeBands...)
	return copied
}
