package fantasy

import "context"

// Repository describes user team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (UserTeam, bool, error)
	ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]UserTeam, error)
	Create(ctx context.Context, team UserTeam) error
	UpdateCaptaincy(ctx context.Context, teamID, captainID, viceCaptainID string) error
}
