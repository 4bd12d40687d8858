package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout = "2006-01-02"

	EventScheduleCreated = "SCHEDULE_CREATED"
	EventLeagueUpdated   = "LEAGUE_UPDATED"
	EventLeagueDeleted   = "LEAGUE_DELETED"
	EventMatchCreated    = "MATCH_CREATED"
	EventMatchUpdated    = "MATCH_UPDATED"
	EventMatchDeleted    = "MATCH_DELETED"

	cascadeParallelism = 4
)

// Broadcaster рассылает события подписчикам комнаты лиги.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type LeagueService interface {
	CreateLeague(ctx context.Context, principal models.Principal, input CreateLeagueInput, opts ScheduleOptions) (*CreateLeagueResult, error)
	UpdateLeague(ctx context.Context, principal models.Principal, leagueID string, input UpdateLeagueInput) (*models.League, error)
	DeleteLeague(ctx context.Context, principal models.Principal, leagueID string) error
	DeleteAllLeagues(ctx context.Context, principal models.Principal) (int, error)
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
	GetLeagueByName(ctx context.Context, name string) (*models.League, error)
	ListLeagues(ctx context.Context) ([]models.League, error)
	ListMyLeagues(ctx context.Context, principal models.Principal) ([]models.League, error)
	GetLeagueDetails(ctx context.Context, leagueID string) (*models.LeagueDetails, error)
}

type CreateLeagueInput struct {
	Name      string          `json:"name" validate:"required,max=150"`
	Format    brackets.Format `json:"league_format" validate:"required"`
	NoOfTeams int             `json:"no_of_teams" validate:"required,min=1"`
	NoOfOvers int             `json:"no_of_overs" validate:"omitempty,min=1,max=50"`
	Teams     []string        `json:"teams" validate:"required,min=1,dive,required,max=100"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Venue     string          `json:"venue" validate:"max=200"`
	Umpires   []string        `json:"umpires" validate:"omitempty,dive,required"`
}

// ScheduleOptions controls the knockout stage appended to the league schedule.
type ScheduleOptions struct {
	IncludeEliminator bool
	IncludeKnockouts  bool
}

type UpdateLeagueInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=150"`
	NoOfTeams   *int     `json:"no_of_teams" validate:"omitempty,min=2"`
	NoOfMatches *int     `json:"no_of_matches" validate:"omitempty,min=0"`
	NoOfOvers   *int     `json:"no_of_overs" validate:"omitempty,min=1,max=50"`
	Teams       []string `json:"teams" validate:"omitempty,min=2,dive,required,max=100"`
	StartDate   *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Venue       *string  `json:"venue" validate:"omitempty,max=200"`
	Umpires     []string `json:"umpires" validate:"omitempty,dive,required"`
}

type CreateLeagueResult struct {
	League  *models.League `json:"league"`
	Matches []models.Match `json:"matches"`
}

type leagueService struct {
	tx         Transactor
	leagueRepo repositories.LeagueRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
	uploader   storage.FileUploader
	hub        Broadcaster
	logger     *slog.Logger
}

func NewLeagueService(
	tx Transactor,
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) LeagueService {
	return &leagueService{
		tx:         tx,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		uploader:   uploader,
		hub:        hub,
		logger:     logger,
	}
}

func (s *leagueService) CreateLeague(ctx context.Context, principal models.Principal, input CreateLeagueInput, opts ScheduleOptions) (*CreateLeagueResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", ErrValidationFailed)
	}
	if len(input.Teams) == 0 {
		return nil, fmt.Errorf("%w: at least one team is required", ErrValidationFailed)
	}
	if input.NoOfTeams != len(input.Teams) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTeamCountMismatch, input.NoOfTeams, len(input.Teams))
	}
	if !input.Format.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, brackets.ErrInvalidFormat)
	}

	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.leagueRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, handleRepositoryError(err, "check league name")
	}
	if exists {
		return nil, ErrLeagueNameConflict
	}

	teamNames := make([]string, len(input.Teams))
	for i, t := range input.Teams {
		teamNames[i] = strings.TrimSpace(t)
	}

	fixtures, err := brackets.BuildSchedule(brackets.LeagueConfig{
		Teams:             teamNames,
		Format:            input.Format,
		Venue:             strings.TrimSpace(input.Venue),
		StartDate:         start,
		EndDate:           end,
		IncludeEliminator: opts.IncludeEliminator,
		IncludeKnockouts:  opts.IncludeKnockouts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	league := &models.League{
		AdminID:     principal.AdminID,
		Name:        name,
		Format:      input.Format,
		NoOfTeams:   input.NoOfTeams,
		NoOfMatches: len(fixtures),
		NoOfOvers:   input.NoOfOvers,
		Teams:       []models.TeamRef{},
		StartDate:   start,
		EndDate:     end,
		Venue:       strings.TrimSpace(input.Venue),
		Umpires:     input.Umpires,
	}
	if league.Umpires == nil {
		league.Umpires = []string{}
	}

	matches := make([]models.Match, len(fixtures))

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.leagueRepo.Create(ctx, exec, league); err != nil {
			return handleRepositoryError(err, "create league")
		}

		refs, err := s.resolveTeams(ctx, exec, league.ID, teamNames)
		if err != nil {
			return err
		}
		league.Teams = refs
		if err := s.leagueRepo.Update(ctx, exec, league); err != nil {
			return handleRepositoryError(err, "attach league teams")
		}

		for i, f := range fixtures {
			matches[i] = models.MatchFromFixture(league.ID, f)
		}
		if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
			return handleRepositoryError(err, "store league schedule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("league created",
		slog.String("league_id", league.ID),
		slog.String("admin_id", principal.AdminID),
		slog.String("format", string(league.Format)),
		slog.Int("matches", len(matches)),
	)
	s.broadcast(league.ID, EventScheduleCreated, matches)

	return &CreateLeagueResult{League: league, Matches: matches}, nil
}

// resolveTeams ищет команды по имени (без учета регистра) и создает недостающие.
// Команда без лиги переходит в эту лигу; команда из чужой лиги дает ErrTeamNameConflict.
func (s *leagueService) resolveTeams(ctx context.Context, exec repositories.SQLExecutor, leagueID string, names []string) ([]models.TeamRef, error) {
	refs := make([]models.TeamRef, 0, len(names))
	for _, name := range names {
		team, err := s.teamRepo.GetByName(ctx, exec, name)
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			team = &models.Team{LeagueID: leagueID, Name: name, Squad: []models.Player{}}
			err = s.teamRepo.Create(ctx, exec, team)
		case err != nil:
		case team.LeagueID == "":
			err = s.teamRepo.AssignLeague(ctx, exec, team.ID, leagueID)
			if errors.Is(err, repositories.ErrTeamNotFound) {
				err = repositories.ErrTeamNameConflict
			}
			team.LeagueID = leagueID
		case team.LeagueID != leagueID:
			return nil, fmt.Errorf("%w: %q is registered in another league", ErrTeamNameConflict, team.Name)
		}
		if err != nil {
			return nil, handleRepositoryError(err, fmt.Sprintf("resolve team %q", name))
		}
		refs = append(refs, models.TeamRef{ID: team.ID, Name: team.Name})
	}
	return refs, nil
}

func (s *leagueService) UpdateLeague(ctx context.Context, principal models.Principal, leagueID string, input UpdateLeagueInput) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	if err := requireOwner(principal, league); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: league name cannot be empty", ErrValidationFailed)
		}
		if name != league.Name {
			other, err := s.leagueRepo.GetByName(ctx, name)
			if err == nil && other.ID != league.ID {
				return nil, ErrLeagueNameConflict
			}
			if err != nil && !errors.Is(err, repositories.ErrLeagueNotFound) {
				return nil, handleRepositoryError(err, "check league name")
			}
			league.Name = name
		}
	}
	if input.NoOfTeams != nil {
		league.NoOfTeams = *input.NoOfTeams
	}
	if input.NoOfMatches != nil {
		league.NoOfMatches = *input.NoOfMatches
	}
	if input.NoOfOvers != nil {
		league.NoOfOvers = *input.NoOfOvers
	}
	if input.Venue != nil {
		league.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Umpires != nil {
		league.Umpires = input.Umpires
	}

	startRaw, endRaw := league.StartDate.Format(dateLayout), league.EndDate.Format(dateLayout)
	if input.StartDate != nil {
		startRaw = *input.StartDate
	}
	if input.EndDate != nil {
		endRaw = *input.EndDate
	}
	if input.StartDate != nil || input.EndDate != nil {
		league.StartDate, league.EndDate, err = parseDateRange(startRaw, endRaw)
		if err != nil {
			return nil, err
		}
	}

	teamCount := len(league.Teams)
	if input.Teams != nil {
		teamCount = len(input.Teams)
	}
	if (input.Teams != nil || input.NoOfTeams != nil) && league.NoOfTeams != teamCount {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTeamCountMismatch, league.NoOfTeams, teamCount)
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if input.Teams != nil {
			names := make([]string, len(input.Teams))
			for i, t := range input.Teams {
				names[i] = strings.TrimSpace(t)
			}
			refs, err := s.resolveTeams(ctx, exec, league.ID, names)
			if err != nil {
				return err
			}
			league.Teams = refs

			keep := make([]string, len(refs))
			for i, ref := range refs {
				keep[i] = ref.ID
			}
			removed, err := s.teamRepo.DeleteByLeagueExcept(ctx, exec, league.ID, keep)
			if err != nil {
				return fmt.Errorf("failed to remove dropped league teams: %w", err)
			}
			if removed > 0 {
				s.logger.Info("dropped teams removed from league", slog.String("league_id", league.ID), slog.Int64("teams", removed))
			}
		}
		return handleRepositoryError(s.leagueRepo.Update(ctx, exec, league), "update league")
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(league.ID, EventLeagueUpdated, league)
	return league, nil
}

func (s *leagueService) DeleteLeague(ctx context.Context, principal models.Principal, leagueID string) error {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return handleRepositoryError(err, "get league")
	}
	if err := requireOwner(principal, league); err != nil {
		return err
	}
	return s.deleteCascade(ctx, league.ID)
}

func (s *leagueService) DeleteAllLeagues(ctx context.Context, principal models.Principal) (int, error) {
	leagues, err := s.leagueRepo.ListByAdmin(ctx, principal.AdminID)
	if err != nil {
		return 0, handleRepositoryError(err, "list leagues")
	}
	if len(leagues) == 0 {
		return 0, ErrNoLeagues
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cascadeParallelism)
	for _, league := range leagues {
		leagueID := league.ID
		g.Go(func() error {
			return s.deleteCascade(gCtx, leagueID)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(leagues), nil
}

// deleteCascade удаляет матчи, команды и саму лигу в одной транзакции.
func (s *leagueService) deleteCascade(ctx context.Context, leagueID string) error {
	var matchesDeleted, teamsDeleted int64
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		if matchesDeleted, err = s.matchRepo.DeleteByLeague(ctx, exec, leagueID); err != nil {
			return fmt.Errorf("failed to delete league matches: %w", err)
		}
		if teamsDeleted, err = s.teamRepo.DeleteByLeague(ctx, exec, leagueID); err != nil {
			return fmt.Errorf("failed to delete league teams: %w", err)
		}
		return handleRepositoryError(s.leagueRepo.Delete(ctx, exec, leagueID), "delete league")
	})
	if err != nil {
		return err
	}

	s.logger.Info("league deleted",
		slog.String("league_id", leagueID),
		slog.Int64("matches", matchesDeleted),
		slog.Int64("teams", teamsDeleted),
	)
	s.broadcast(leagueID, EventLeagueDeleted, map[string]string{"league_id": leagueID})
	return nil
}

func (s *leagueService) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	return league, nil
}

func (s *leagueService) GetLeagueByName(ctx context.Context, name string) (*models.League, error) {
	league, err := s.leagueRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, handleRepositoryError(err, "get league by name")
	}
	return league, nil
}

func (s *leagueService) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list leagues")
	}
	return leagues, nil
}

func (s *leagueService) ListMyLeagues(ctx context.Context, principal models.Principal) ([]models.League, error) {
	leagues, err := s.leagueRepo.ListByAdmin(ctx, principal.AdminID)
	if err != nil {
		return nil, handleRepositoryError(err, "list admin leagues")
	}
	return leagues, nil
}

func (s *leagueService) GetLeagueDetails(ctx context.Context, leagueID string) (*models.LeagueDetails, error) {
	details := &models.LeagueDetails{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		league, err := s.leagueRepo.GetByID(gCtx, leagueID)
		if err != nil {
			return handleRepositoryError(err, "get league")
		}
		details.League = league
		return nil
	})

	g.Go(func() error {
		teams, err := s.teamRepo.ListByLeague(gCtx, leagueID)
		if err != nil {
			return handleRepositoryError(err, "list league teams")
		}
		for i := range teams {
			populateTeamLogoURL(&teams[i], s.uploader)
		}
		details.Teams = teams
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByLeague(gCtx, leagueID)
		if err != nil {
			return handleRepositoryError(err, "list league matches")
		}
		details.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *leagueService) broadcast(leagueID, event string, payload interface{}) {
	broadcastLeagueEvent(s.hub, leagueID, event, payload)
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(startRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", ErrValidationFailed, startRaw)
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(endRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", ErrValidationFailed, endRaw)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}
