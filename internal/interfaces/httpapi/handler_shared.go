package httpapi

import (
	"context"
	"time"

	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
	"github.com/primev/fantasy-volleyball/internal/usecase"
)

type createTeamRequest struct {
	MatchID       string   `json:"match_id" validate:"required"`
	Name          string   `json:"name" validate:"omitempty,max=100"`
	PlayerIDs     []string `json:"player_ids" validate:"required,len=6,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type tryPickRequest struct {
	MatchID      string   `json:"match_id" validate:"required"`
	PlayerIDs    []string `json:"player_ids" validate:"omitempty,max=5,dive,required"`
	NextPlayerID string   `json:"next_player_id" validate:"required"`
}

type updateCaptaincyRequest struct {
	CaptainID     string `json:"captain_id" validate:"required"`
	ViceCaptainID string `json:"vice_captain_id" validate:"required"`
}

type joinContestRequest struct {
	TeamIDs []string `json:"team_ids" validate:"required,min=1,dive,required"`
}

type createContestRequest struct {
	MatchID    string `json:"match_id" validate:"required"`
	TemplateID string `json:"template_id" validate:"required"`
	Name       string `json:"name" validate:"omitempty,max=100"`
}

type statLinePayload struct {
	PlayerID   string `json:"player_id" validate:"required"`
	Set        int    `json:"set" validate:"required,min=1,max=5"`
	IsStarter  bool   `json:"is_starter"`
	SetResult  string `json:"set_result" validate:"required,oneof=win loss none"`
	Attacks    int    `json:"attacks" validate:"min=0"`
	Receptions int    `json:"receptions" validate:"min=0"`
	Aces       int    `json:"aces" validate:"min=0"`
	Blocks     int    `json:"blocks" validate:"min=0"`
}

type ingestMatchStatsRequest struct {
	MatchID string            `json:"match_id" validate:"required"`
	Lines   []statLinePayload `json:"lines" validate:"required,min=1,dive"`
}

type upsertTemplateRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"omitempty,max=255"`
	EntryFee        int64   `json:"entry_fee" validate:"min=0"`
	PrizePool       int64   `json:"prize_pool" validate:"min=0"`
	MaxSpots        int     `json:"max_spots" validate:"required,min=1"`
	MaxTeamsPerUser int     `json:"max_teams_per_user" validate:"required,min=1"`
	WinnerPct       float64 `json:"winner_pct" validate:"required,gt=0,lte=100"`
	IsGuaranteed    bool    `json:"is_guaranteed"`
}

type matchDTO struct {
	ID         string `json:"id"`
	LeagueID   string `json:"league_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	StartAtUTC string `json:"start_at_utc"`
	Status     string `json:"status"`
	Venue      string `json:"venue"`
	Round      string `json:"round"`
}

type playerSlotDTO struct {
	PlayerID        string  `json:"player_id"`
	MatchID         string  `json:"match_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Credits         int64   `json:"credits"`
	RealTeamID      string  `json:"real_team_id"`
	ImageURL        string  `json:"image_url,omitempty"`
	LastMatchPoints int     `json:"last_match_points"`
	SelectionPct    float64 `json:"selection_pct"`
}

type teamPickDTO struct {
	PlayerID   string `json:"player_id"`
	RealTeamID string `json:"real_team_id"`
	Category   string `json:"category"`
	Credits    int64  `json:"credits"`
}

type userTeamDTO struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	MatchID       string        `json:"match_id"`
	Name          string        `json:"name"`
	Picks         []teamPickDTO `json:"picks"`
	CaptainID     string        `json:"captain_id"`
	ViceCaptainID string        `json:"vice_captain_id"`
	CreditsSpent  int64         `json:"credits_spent"`
	CreatedAtUTC  string        `json:"created_at_utc"`
	UpdatedAtUTC  string        `json:"updated_at_utc"`
}

type prizeBandDTO struct {
	RankStart   int    `json:"rank_start"`
	RankEnd     int    `json:"rank_end"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

type contestDTO struct {
	ID              string         `json:"id"`
	MatchID         string         `json:"match_id"`
	Name            string         `json:"name"`
	EntryFee        int64          `json:"entry_fee"`
	PrizePool       int64          `json:"prize_pool"`
	TotalSpots      int            `json:"total_spots"`
	SpotsLeft       int            `json:"spots_left"`
	MaxTeamsPerUser int            `json:"max_teams_per_user"`
	IsGuaranteed    bool           `json:"is_guaranteed"`
	Status          string         `json:"status"`
	PrizeBands      []prizeBandDTO `json:"prize_bands"`
}

type entryDTO struct {
	ContestID   string `json:"contest_id"`
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id"`
	JoinedAtUTC string `json:"joined_at_utc"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type leaderboardRowDTO struct {
	Entry entryDTO      `json:"entry"`
	Prize *prizeBandDTO `json:"prize,omitempty"`
}

type playerScoreDTO struct {
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
}

type templateDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	EntryFee        int64   `json:"entry_fee"`
	PrizePool       int64   `json:"prize_pool"`
	MaxSpots        int     `json:"max_spots"`
	MaxTeamsPerUser int     `json:"max_teams_per_user"`
	WinnerPct       float64 `json:"winner_pct"`
	IsGuaranteed    bool    `json:"is_guaranteed"`
}

func matchToDTO(ctx context.Context, v roster.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:         v.ID,
		LeagueID:   v.LeagueID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		StartAtUTC: v.StartAt.UTC().Format(time.RFC3339),
		Status:     v.Status,
		Venue:      v.Venue,
		Round:      v.Round,
	}
}

func playerSlotToDTO(ctx context.Context, v roster.PlayerSlot) playerSlotDTO {
	ctx, span := startSpan(ctx, "httpapi.playerSlotToDTO")
	defer span.End()

	return playerSlotDTO{
		PlayerID:        v.PlayerID,
		MatchID:         v.MatchID,
		Name:            v.Name,
		Category:        string(v.Category),
		Credits:         v.Credits,
		RealTeamID:      v.RealTeamID,
		ImageURL:        v.ImageURL,
		LastMatchPoints: v.LastMatchPoints,
		SelectionPct:    v.SelectionPct,
	}
}

func userTeamToDTO(ctx context.Context, v fantasy.UserTeam) userTeamDTO {
	ctx, span := startSpan(ctx, "httpapi.userTeamToDTO")
	defer span.End()

	picks := make([]teamPickDTO, 0, len(v.Picks))
	var spent int64
	for _, pick := range v.Picks {
		spent += pick.Credits
		picks = append(picks, teamPickDTO{
			PlayerID:   pick.PlayerID,
			RealTeamID: pick.RealTeamID,
			Category:   string(pick.Category),
			Credits:    pick.Credits,
		})
	}

	return userTeamDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		MatchID:       v.MatchID,
		Name:          v.Name,
		Picks:         picks,
		CaptainID:     v.CaptainID,
		ViceCaptainID: v.ViceCaptainID,
		CreditsSpent:  spent,
		CreatedAtUTC:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func prizeBandToDTO(v contest.PrizeBand) prizeBandDTO {
	return prizeBandDTO{
		RankStart:   v.RankStart,
		RankEnd:     v.RankEnd,
		Amount:      v.Amount,
		Description: v.Description,
	}
}

func contestToDTO(ctx context.Context, v contest.Contest) contestDTO {
	ctx, span := startSpan(ctx, "httpapi.contestToDTO")
	defer span.End()

	bands := make([]prizeBandDTO, 0, len(v.PrizeBands))
	for _, band := range v.PrizeBands {
		bands = append(bands, prizeBandToDTO(band))
	}

	return contestDTO{
		ID:              v.ID,
		MatchID:         v.MatchID,
		Name:            v.Name,
		EntryFee:        v.EntryFee,
		PrizePool:       v.PrizePool,
		TotalSpots:      v.TotalSpots,
		SpotsLeft:       v.SpotsLeft,
		MaxTeamsPerUser: v.MaxTeamsPerUser,
		IsGuaranteed:    v.IsGuaranteed,
		Status:          v.Status,
		PrizeBands:      bands,
	}
}

func entryToDTO(v contest.Entry) entryDTO {
	return entryDTO{
		ContestID:   v.ContestID,
		TeamID:      v.TeamID,
		UserID:      v.UserID,
		JoinedAtUTC: v.JoinedAt.UTC().Format(time.RFC3339),
		TotalPoints: v.TotalPoints,
		Rank:        v.Rank,
	}
}

func leaderboardRowToDTO(ctx context.Context, v usecase.LeaderboardRow) leaderboardRowDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardRowToDTO")
	defer span.End()

	row := leaderboardRowDTO{Entry: entryToDTO(v.Entry)}
	if v.Prize != nil {
		prize := prizeBandToDTO(*v.Prize)
		row.Prize = &prize
	}
	return row
}

func templateToDTO(v contest.Template) templateDTO {
	return templateDTO{
		ID:              v.ID,
		Name:            v.Name,
		Description:     v.Description,
		EntryFee:        v.EntryFee,
		PrizePool:       v.PrizePool,
		MaxSpots:        v.MaxSpots,
		MaxTeamsPerUser: v.MaxTeamsPerUser,
		WinnerPct:       v.WinnerPct,
		IsGuaranteed:    v.IsGuaranteed,
	}
}
