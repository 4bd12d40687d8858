package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, principal models.Principal, input CreateMatchInput) (*models.Match, error)
	UpdateMatch(ctx context.Context, principal models.Principal, matchID string, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, principal models.Principal, matchID string) error
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListMatchesByLeague(ctx context.Context, leagueID string) ([]models.Match, error)
}

type CreateMatchInput struct {
	LeagueID      string             `json:"league_id" validate:"required,uuid"`
	Team1         string             `json:"team1" validate:"required"`
	Team2         string             `json:"team2" validate:"required"`
	Venue         string             `json:"venue" validate:"max=200"`
	Status        models.MatchStatus `json:"status"`
	MatchType     brackets.MatchType `json:"match_type"`
	MatchNo       *int               `json:"match_no" validate:"omitempty,min=1"`
	ScheduledDate time.Time          `json:"scheduled_date" validate:"required"`
	MatchOvers    *int               `json:"match_overs" validate:"omitempty,min=1,max=50"`
}

type UpdateMatchInput struct {
	Team1         *string             `json:"team1" validate:"omitempty,min=1"`
	Team2         *string             `json:"team2" validate:"omitempty,min=1"`
	Venue         *string             `json:"venue" validate:"omitempty,max=200"`
	Status        *models.MatchStatus `json:"status"`
	MatchType     *brackets.MatchType `json:"match_type"`
	MatchNo       *int                `json:"match_no" validate:"omitempty,min=1"`
	ScheduledDate *time.Time          `json:"scheduled_date"`
	MatchOvers    *int                `json:"match_overs" validate:"omitempty,min=1,max=50"`
}

type matchService struct {
	matchRepo  repositories.MatchRepository
	leagueRepo repositories.LeagueRepository
	hub        Broadcaster
	logger     *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	leagueRepo repositories.LeagueRepository,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:  matchRepo,
		leagueRepo: leagueRepo,
		hub:        hub,
		logger:     logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, principal models.Principal, input CreateMatchInput) (*models.Match, error) {
	league, err := s.ownedLeague(ctx, principal, input.LeagueID)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		LeagueID:      league.ID,
		Team1:         strings.TrimSpace(input.Team1),
		Team2:         strings.TrimSpace(input.Team2),
		Venue:         strings.TrimSpace(input.Venue),
		Status:        input.Status,
		MatchType:     input.MatchType,
		ScheduledDate: input.ScheduledDate,
		MatchOvers:    input.MatchOvers,
	}
	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	if match.MatchType == "" {
		match.MatchType = brackets.MatchTypeLeague
	}
	if err := validateMatch(league, match); err != nil {
		return nil, err
	}

	if input.MatchNo != nil {
		match.MatchNo = *input.MatchNo
	} else {
		next, err := s.nextMatchNo(ctx, league.ID)
		if err != nil {
			return nil, err
		}
		match.MatchNo = next
	}

	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, handleRepositoryError(err, "create match")
	}

	s.logger.Info("match created", slog.String("match_id", match.ID), slog.String("league_id", league.ID), slog.Int("match_no", match.MatchNo))
	broadcastLeagueEvent(s.hub, league.ID, EventMatchCreated, match)
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, principal models.Principal, matchID string, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	league, err := s.ownedLeague(ctx, principal, match.LeagueID)
	if err != nil {
		return nil, err
	}

	if input.Team1 != nil {
		match.Team1 = strings.TrimSpace(*input.Team1)
	}
	if input.Team2 != nil {
		match.Team2 = strings.TrimSpace(*input.Team2)
	}
	if input.Venue != nil {
		match.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Status != nil {
		match.Status = *input.Status
	}
	if input.MatchType != nil {
		match.MatchType = *input.MatchType
	}
	if input.MatchNo != nil {
		match.MatchNo = *input.MatchNo
	}
	if input.ScheduledDate != nil {
		match.ScheduledDate = *input.ScheduledDate
	}
	if input.MatchOvers != nil {
		match.MatchOvers = input.MatchOvers
	}

	if err := validateMatch(league, match); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, handleRepositoryError(err, "update match")
	}

	broadcastLeagueEvent(s.hub, league.ID, EventMatchUpdated, match)
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, principal models.Principal, matchID string) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return handleRepositoryError(err, "get match")
	}
	if _, err := s.ownedLeague(ctx, principal, match.LeagueID); err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, match.ID); err != nil {
		return handleRepositoryError(err, "delete match")
	}

	broadcastLeagueEvent(s.hub, match.LeagueID, EventMatchDeleted, map[string]string{"match_id": match.ID})
	return nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	return matches, nil
}

func (s *matchService) ListMatchesByLeague(ctx context.Context, leagueID string) ([]models.Match, error) {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	matches, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "list league matches")
	}
	return matches, nil
}

func (s *matchService) ownedLeague(ctx context.Context, principal models.Principal, leagueID string) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	if err := requireOwner(principal, league); err != nil {
		return nil, err
	}
	return league, nil
}

func (s *matchService) nextMatchNo(ctx context.Context, leagueID string) (int, error) {
	matches, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return 0, handleRepositoryError(err, "list league matches")
	}
	next := 1
	for _, m := range matches {
		if m.MatchNo >= next {
			next = m.MatchNo + 1
		}
	}
	return next, nil
}

func validateMatch(league *models.League, match *models.Match) error {
	if !match.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMatchStatus, match.Status)
	}
	if !match.MatchType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMatchType, match.MatchType)
	}
	if match.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduled date is required", ErrValidationFailed)
	}
	if sameName(match.Team1, match.Team2) {
		return ErrSameTeams
	}
	knockout := match.MatchType != brackets.MatchTypeLeague
	for _, name := range []string{match.Team1, match.Team2} {
		if knockout && brackets.IsPlaceholder(name) {
			continue
		}
		if !leagueHasTeam(league, name) {
			return fmt.Errorf("%w: %q", ErrTeamNotInLeague, name)
		}
	}
	return nil
}

func leagueHasTeam(league *models.League, name string) bool {
	for _, t := range league.Teams {
		if sameName(t.Name, name) {
			return true
		}
	}
	return false
}
