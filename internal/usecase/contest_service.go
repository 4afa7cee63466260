package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
	idgen "github.com/primev/fantasy-volleyball/internal/platform/id"
)

// JoinContestInput enters one or more saved teams into a contest.
type JoinContestInput struct {
	ContestID string
	UserID    string
	TeamIDs   []string
}

// CreateContestInput stamps a contest for a match from a template.
type CreateContestInput struct {
	MatchID    string
	TemplateID string
	Name       string
}

type ContestService struct {
	contestRepo  contest.Repository
	templateRepo contest.TemplateRepository
	teamRepo     fantasy.Repository
	rosterRepo   roster.Repository
	idGen        idgen.Generator
	logger       *slog.Logger
	now          func() time.Time
}

func NewContestService(
	contestRepo contest.Repository,
	templateRepo contest.TemplateRepository,
	teamRepo fantasy.Repository,
	rosterRepo roster.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *ContestService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContestService{
		contestRepo:  contestRepo,
		templateRepo: templateRepo,
		teamRepo:     teamRepo,
		rosterRepo:   rosterRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// Join reserves spots for every team in the request or for none of them.
// Ownership, match affinity and the join window are checked here; spot
// capacity, the per-user team cap and entry uniqueness are re-checked by
// the repository inside a single transaction, which is what makes
// concurrent joins against the last spots safe.
func (s *ContestService) Join(ctx context.Context, input JoinContestInput) ([]contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Join")
	defer span.End()

	input.ContestID = strings.TrimSpace(input.ContestID)
	input.UserID = strings.TrimSpace(input.UserID)

	if input.ContestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(input.TeamIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one team id is required", ErrInvalidInput)
	}

	teamIDs := make([]string, 0, len(input.TeamIDs))
	seen := make(map[string]struct{}, len(input.TeamIDs))
	for _, teamID := range input.TeamIDs {
		teamID = strings.TrimSpace(teamID)
		if teamID == "" {
			return nil, fmt.Errorf("%w: team id must not be empty", ErrInvalidInput)
		}
		if _, exists := seen[teamID]; exists {
			return nil, fmt.Errorf("%w: team %s listed twice in request", contest.ErrDuplicateEntry, teamID)
		}
		seen[teamID] = struct{}{}
		teamIDs = append(teamIDs, teamID)
	}

	item, exists, err := s.contestRepo.Get(ctx, input.ContestID)
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest %s", ErrNotFound, input.ContestID)
	}

	match, matchExists, err := s.rosterRepo.GetMatch(ctx, item.MatchID)
	if err != nil {
		return nil, fmt.Errorf("get match for contest: %w", err)
	}
	if !matchExists {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, item.MatchID)
	}

	now := s.now().UTC()
	if match.Started(now) {
		return nil, fmt.Errorf("%w: contest %s is closed", ErrMatchStarted, item.ID)
	}

	entries := make([]contest.Entry, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		team, teamExists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("get team %s: %w", teamID, err)
		}
		if !teamExists {
			return nil, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
		}
		if team.UserID != input.UserID {
			return nil, fmt.Errorf("%w: team %s does not belong to user", ErrUnauthorized, teamID)
		}
		if team.MatchID != item.MatchID {
			return nil, fmt.Errorf("%w: team %s is built for a different match", ErrInvalidInput, teamID)
		}

		entries = append(entries, contest.Entry{
			ContestID: item.ID,
			TeamID:    teamID,
			UserID:    input.UserID,
			JoinedAt:  now,
		})
	}

	if err := s.contestRepo.Join(ctx, item.ID, item.MaxTeamsPerUser, entries); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "contest joined",
		"contest_id", item.ID,
		"user_id", input.UserID,
		"teams", len(entries),
	)
	return entries, nil
}

func (s *ContestService) ListByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListByMatch")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	contests, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list contests by match: %w", err)
	}
	return contests, nil
}

func (s *ContestService) Get(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Get")
	defer span.End()

	if strings.TrimSpace(contestID) == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.Get(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}
	return item, nil
}

// CreateFromTemplate stamps a joinable contest for an upcoming match.
func (s *ContestService) CreateFromTemplate(ctx context.Context, input CreateContestInput) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.CreateFromTemplate")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.Name = strings.TrimSpace(input.Name)

	if input.MatchID == "" {
		return contest.Contest{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.TemplateID == "" {
		return contest.Contest{}, fmt.Errorf("%w: template id is required", ErrInvalidInput)
	}

	template, exists, err := s.templateRepo.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest template: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest template %s", ErrNotFound, input.TemplateID)
	}

	match, matchExists, err := s.rosterRepo.GetMatch(ctx, input.MatchID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get match: %w", err)
	}
	if !matchExists {
		return contest.Contest{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if match.Started(s.now().UTC()) {
		return contest.Contest{}, fmt.Errorf("%w: cannot open a contest for match %s", ErrMatchStarted, match.ID)
	}

	contestID, err := s.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate contest id: %w", err)
	}

	name := input.Name
	if name == "" {
		name = template.Name
	}

	item := contest.Contest{
		ID:              contestID,
		MatchID:         match.ID,
		Name:            name,
		EntryFee:        template.EntryFee,
		PrizePool:       template.PrizePool,
		TotalSpots:      template.MaxSpots,
		SpotsLeft:       template.MaxSpots,
		MaxTeamsPerUser: template.MaxTeamsPerUser,
		IsGuaranteed:    template.IsGuaranteed,
		Status:          contest.StatusOpen,
		PrizeBands:      derivePrizeBands(template.PrizePool, template.MaxSpots, template.WinnerPct),
		CreatedAt:       s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return contest.Contest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.contestRepo.Create(ctx, item); err != nil {
		return contest.Contest{}, fmt.Errorf("create contest: %w", err)
	}

	s.logger.InfoContext(ctx, "contest created",
		"contest_id", item.ID,
		"match_id", item.MatchID,
		"template_id", template.ID,
		"total_spots", item.TotalSpots,
	)
	return item, nil
}

func (s *ContestService) ListTemplates(ctx context.Context) ([]contest.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListTemplates")
	defer span.End()

	templates, err := s.templateRepo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contest templates: %w", err)
	}
	return templates, nil
}

// UpsertTemplate saves an admin-defined contest blueprint.
func (s *ContestService) UpsertTemplate(ctx context.Context, template contest.Template) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.UpsertTemplate")
	defer span.End()

	template.ID = strings.TrimSpace(template.ID)
	template.Name = strings.TrimSpace(template.Name)
	if err := template.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.templateRepo.UpsertTemplate(ctx, template); err != nil {
		return fmt.Errorf("upsert contest template: %w", err)
	}

	s.logger.InfoContext(ctx, "contest template saved", "template_id", template.ID)
	return nil
}

// derivePrizeBands splits the pool across the winning ranks: 30% to first,
// 20% to second and the remainder spread evenly over the other paid ranks.
// A single-winner contest pays the whole pool to rank one.
func derivePrizeBands(prizePool int64, totalSpots int, winnerPct float64) []contest.PrizeBand {
	if prizePool <= 0 {
		return nil
	}

	winners := int(math.Round(float64(totalSpots) * winnerPct / 100))
	if winners < 1 {
		winners = 1
	}
	if winners > totalSpots {
		winners = totalSpots
	}

	if winners == 1 {
		return []contest.PrizeBand{{RankStart: 1, RankEnd: 1, Amount: prizePool}}
	}
	if winners == 2 {
		first := prizePool * 60 / 100
		return []contest.PrizeBand{
			{RankStart: 1, RankEnd: 1, Amount: first},
			{RankStart: 2, RankEnd: 2, Amount: prizePool - first},
		}
	}

	first := prizePool * 30 / 100
	second := prizePool * 20 / 100
	rest := prizePool - first - second
	perRank := rest / int64(winners-2)
	return []contest.PrizeBand{
		{RankStart: 1, RankEnd: 1, Amount: first},
		{RankStart: 2, RankEnd: 2, Amount: second},
		{RankStart: 3, RankEnd: winners, Amount: perRank},
	}
}
