package contest

import "context"

// Repository persists contests and their entries.
//
// Join is the single place the core needs atomicity from the store: it
// must re-check spots, the per-user team cap, and entry uniqueness, then
// decrement SpotsLeft and insert every entry in one transaction. Partial
// joins are never visible; on any failure state is left untouched.
type Repository interface {
	Get(ctx context.Context, contestID string) (Contest, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Contest, error)
	Create(ctx context.Context, item Contest) error

	Join(ctx context.Context, contestID string, maxTeamsPerUser int, entries []Entry) error
	ListEntries(ctx context.Context, contestID string) ([]Entry, error)
	ListEntriesByMatch(ctx context.Context, matchID string) ([]Entry, error)
	UpdateEntryPoints(ctx context.Context, contestID, teamID string, totalPoints int) error
	UpdateEntryRanks(ctx context.Context, contestID string, rankByTeamID map[string]int) error
}

// TemplateRepository stores admin-defined contest blueprints.
type TemplateRepository interface {
	GetTemplate(ctx context.Context, templateID string) (Template, bool, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	UpsertTemplate(ctx context.Context, item Template) error
}
