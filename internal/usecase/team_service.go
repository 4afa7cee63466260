package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
	idgen "github.com/primev/fantasy-volleyball/internal/platform/id"
)

// CreateTeamInput is the incoming payload for saving a new fantasy team.
type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// TryPickInput asks whether one more player can join a partial selection.
type TryPickInput struct {
	MatchID      string
	PlayerIDs    []string
	NextPlayerID string
}

// UpdateCaptaincyInput re-selects captain and vice-captain before match lock.
type UpdateCaptaincyInput struct {
	UserID        string
	TeamID        string
	CaptainID     string
	ViceCaptainID string
}

type TeamService struct {
	rosterRepo roster.Repository
	teamRepo   fantasy.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewTeamService(
	rosterRepo roster.Repository,
	teamRepo fantasy.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates the selection against the roster catalog and persists
// the team. This is the authoritative server-side re-check; the client may
// have used TryPick for feedback but its result is never trusted.
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (fantasy.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)

	if input.UserID == "" {
		return fantasy.UserTeam{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return fantasy.UserTeam{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return fantasy.UserTeam{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	match, err := s.requireMatch(ctx, input.MatchID)
	if err != nil {
		return fantasy.UserTeam{}, err
	}
	if match.Started(s.now().UTC()) {
		return fantasy.UserTeam{}, fmt.Errorf("%w: team building is closed for match %s", ErrMatchStarted, match.ID)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return fantasy.UserTeam{}, err
	}

	picks, err := s.resolvePicks(ctx, input.MatchID, playerIDs)
	if err != nil {
		return fantasy.UserTeam{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.UserTeam{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	team := fantasy.UserTeam{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		Name:          input.Name,
		Picks:         picks,
		CaptainID:     strings.TrimSpace(input.CaptainID),
		ViceCaptainID: strings.TrimSpace(input.ViceCaptainID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := fantasy.ValidateTeam(team, s.rules); err != nil {
		return fantasy.UserTeam{}, err
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fantasy.UserTeam{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", team.ID,
		"user_id", team.UserID,
		"match_id", team.MatchID,
	)
	return team, nil
}

// TryPick answers can-select feedback while a user builds a team.
func (s *TeamService) TryPick(ctx context.Context, input TryPickInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.TryPick")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.NextPlayerID = strings.TrimSpace(input.NextPlayerID)

	if input.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.NextPlayerID == "" {
		return fmt.Errorf("%w: next player id is required", ErrInvalidInput)
	}

	current := make([]fantasy.TeamPick, 0, len(input.PlayerIDs))
	if len(input.PlayerIDs) > 0 {
		playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
		if err != nil {
			return err
		}
		current, err = s.resolvePicks(ctx, input.MatchID, playerIDs)
		if err != nil {
			return err
		}
	}

	nextPicks, err := s.resolvePicks(ctx, input.MatchID, []string{input.NextPlayerID})
	if err != nil {
		return err
	}

	return fantasy.ValidatePick(current, nextPicks[0], s.rules)
}

// UpdateCaptaincy re-selects captain and vice-captain on an existing team.
// Rejected once the match has started.
func (s *TeamService) UpdateCaptaincy(ctx context.Context, input UpdateCaptaincyInput) (fantasy.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateCaptaincy")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.TeamID == "" {
		return fantasy.UserTeam{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return fantasy.UserTeam{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fantasy.UserTeam{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
	}
	if team.UserID != input.UserID {
		return fantasy.UserTeam{}, fmt.Errorf("%w: team %s does not belong to user", ErrUnauthorized, input.TeamID)
	}

	match, err := s.requireMatch(ctx, team.MatchID)
	if err != nil {
		return fantasy.UserTeam{}, err
	}
	if match.Started(s.now().UTC()) {
		return fantasy.UserTeam{}, fmt.Errorf("%w: captaincy is locked for match %s", ErrMatchStarted, match.ID)
	}

	team.CaptainID = input.CaptainID
	team.ViceCaptainID = input.ViceCaptainID
	team.UpdatedAt = s.now().UTC()
	if err := fantasy.ValidateTeam(team, s.rules); err != nil {
		return fantasy.UserTeam{}, err
	}

	if err := s.teamRepo.UpdateCaptaincy(ctx, team.ID, team.CaptainID, team.ViceCaptainID); err != nil {
		return fantasy.UserTeam{}, fmt.Errorf("update captaincy: %w", err)
	}

	return team, nil
}

func (s *TeamService) ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]fantasy.UserTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByUserAndMatch")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("list teams by user and match: %w", err)
	}
	return teams, nil
}

func (s *TeamService) requireMatch(ctx context.Context, matchID string) (roster.Match, error) {
	match, exists, err := s.rosterRepo.GetMatch(ctx, matchID)
	if err != nil {
		return roster.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return roster.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return match, nil
}

func (s *TeamService) resolvePicks(ctx context.Context, matchID string, playerIDs []string) ([]fantasy.TeamPick, error) {
	slots, err := s.rosterRepo.GetPlayersByIDs(ctx, matchID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	if len(slots) != len(playerIDs) {
		return nil, fmt.Errorf("%w: some players are not eligible for match=%s", ErrInvalidInput, matchID)
	}

	slotByID := make(map[string]roster.PlayerSlot, len(slots))
	for _, slot := range slots {
		slotByID[slot.PlayerID] = slot
	}

	picks := make([]fantasy.TeamPick, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		slot, ok := slotByID[playerID]
		if !ok {
			return nil, fmt.Errorf("%w: player %s is not eligible for match=%s", ErrInvalidInput, playerID, matchID)
		}
		picks = append(picks, fantasy.TeamPick{
			PlayerID:   slot.PlayerID,
			RealTeamID: slot.RealTeamID,
			Category:   slot.Category,
			Credits:    slot.Credits,
		})
	}
	return picks, nil
}

func cleanPlayerIDs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id must not be empty", ErrInvalidInput)
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("%w: %s", fantasy.ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
