package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"github.com/google/uuid"
)

const MinSquadSize = 15

type TeamService interface {
	CreateTeam(ctx context.Context, principal models.Principal, input CreateTeamInput) (*models.Team, error)
	UpdateTeam(ctx context.Context, principal models.Principal, teamID string, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, principal models.Principal, teamID string) error
	DeleteAllTeams(ctx context.Context, principal models.Principal) (int64, error)
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamsByLeague(ctx context.Context, leagueID string) ([]models.Team, error)
	UploadTeamLogo(ctx context.Context, principal models.Principal, teamID string, file io.Reader, contentType string) (*models.Team, error)
}

type PlayerInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Role string `json:"role" validate:"omitempty,max=50"`
}

type CreateTeamInput struct {
	LeagueID    string        `json:"league_id" validate:"required,uuid"`
	Name        string        `json:"name" validate:"required,max=100"`
	Coach       string        `json:"coach" validate:"required,max=100"`
	Squad       []PlayerInput `json:"squad" validate:"required,dive"`
	Captain     string        `json:"captain" validate:"required"`
	ViceCaptain string        `json:"vice_captain" validate:"required"`
}

type UpdateTeamInput struct {
	Name        *string       `json:"name" validate:"omitempty,min=1,max=100"`
	Coach       *string       `json:"coach" validate:"omitempty,min=1,max=100"`
	Squad       []PlayerInput `json:"squad" validate:"omitempty,dive"`
	Captain     *string       `json:"captain" validate:"omitempty,min=1"`
	ViceCaptain *string       `json:"vice_captain" validate:"omitempty,min=1"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	leagueRepo repositories.LeagueRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	leagueRepo repositories.LeagueRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, principal models.Principal, input CreateTeamInput) (*models.Team, error) {
	league, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	if err := requireOwner(principal, league); err != nil {
		return nil, err
	}

	team := &models.Team{
		LeagueID: league.ID,
		Name:     strings.TrimSpace(input.Name),
		Coach:    strings.TrimSpace(input.Coach),
		Squad:    buildSquad(input.Squad),
	}
	if err := assignLeadership(team, input.Captain, input.ViceCaptain); err != nil {
		return nil, err
	}
	if err := validateTeam(team); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, team.Name, ""); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, handleRepositoryError(err, "create team")
	}
	s.logger.Info("team created", slog.String("team_id", team.ID), slog.String("league_id", team.LeagueID))
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, principal models.Principal, teamID string, input UpdateTeamInput) (*models.Team, error) {
	team, league, err := s.ownedTeam(ctx, principal, teamID)
	if err != nil {
		return nil, err
	}

	oldName := team.Name
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !sameName(name, team.Name) {
			if err := s.ensureNameAvailable(ctx, name, team.ID); err != nil {
				return nil, err
			}
		}
		team.Name = name
	}
	if input.Coach != nil {
		team.Coach = strings.TrimSpace(*input.Coach)
	}

	captain, viceCaptain := playerName(team.Captain), playerName(team.ViceCaptain)
	if input.Squad != nil {
		team.Squad = buildSquad(input.Squad)
	}
	if input.Captain != nil {
		captain = *input.Captain
	}
	if input.ViceCaptain != nil {
		viceCaptain = *input.ViceCaptain
	}
	if err := assignLeadership(team, captain, viceCaptain); err != nil {
		return nil, err
	}
	if err := validateTeam(team); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, handleRepositoryError(err, "update team")
	}

	if league != nil && team.Name != oldName {
		for i := range league.Teams {
			if league.Teams[i].ID == team.ID {
				league.Teams[i].Name = team.Name
			}
		}
		if err := s.leagueRepo.Update(ctx, nil, league); err != nil {
			return nil, handleRepositoryError(err, "rename league team")
		}
	}

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, principal models.Principal, teamID string) error {
	team, _, err := s.ownedTeam(ctx, principal, teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
		return handleRepositoryError(err, "delete team")
	}
	if team.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.Warn("failed to delete team logo", slog.String("team_id", team.ID), slog.Any("error", err))
		}
	}
	return nil
}

// DeleteAllTeams удаляет все команды во всех лигах администратора.
func (s *teamService) DeleteAllTeams(ctx context.Context, principal models.Principal) (int64, error) {
	leagues, err := s.leagueRepo.ListByAdmin(ctx, principal.AdminID)
	if err != nil {
		return 0, handleRepositoryError(err, "list leagues")
	}
	var total int64
	for _, league := range leagues {
		n, err := s.teamRepo.DeleteByLeague(ctx, nil, league.ID)
		if err != nil {
			return total, handleRepositoryError(err, "delete league teams")
		}
		total += n
	}
	return total, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, nil, strings.TrimSpace(name))
	if err != nil {
		return nil, handleRepositoryError(err, "get team by name")
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]models.Team, error) {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, handleRepositoryError(err, "list league teams")
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) UploadTeamLogo(ctx context.Context, principal models.Principal, teamID string, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	team, _, err := s.ownedTeam(ctx, principal, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%s/logo-%s", team.ID, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	previous := team.LogoKey
	team.LogoKey = &key
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up uploaded logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, handleRepositoryError(err, "store team logo")
	}

	if previous != nil && *previous != "" {
		if err := s.uploader.Delete(ctx, *previous); err != nil {
			s.logger.Warn("failed to delete previous team logo", slog.String("key", *previous), slog.Any("error", err))
		}
	}

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

// ownedTeam загружает команду и проверяет, что ее лига принадлежит администратору.
func (s *teamService) ownedTeam(ctx context.Context, principal models.Principal, teamID string) (*models.Team, *models.League, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, nil, handleRepositoryError(err, "get team")
	}
	if team.LeagueID == "" {
		return nil, nil, ErrForbiddenOperation
	}
	league, err := s.leagueRepo.GetByID(ctx, team.LeagueID)
	if err != nil {
		return nil, nil, handleRepositoryError(err, "get team league")
	}
	if err := requireOwner(principal, league); err != nil {
		return nil, nil, err
	}
	return team, league, nil
}

func (s *teamService) ensureNameAvailable(ctx context.Context, name, selfID string) error {
	existing, err := s.teamRepo.GetByName(ctx, nil, name)
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return nil
	}
	if err != nil {
		return handleRepositoryError(err, "check team name")
	}
	if existing.ID != selfID {
		return ErrTeamNameConflict
	}
	return nil
}

func buildSquad(players []PlayerInput) []models.Player {
	squad := make([]models.Player, 0, len(players))
	for _, p := range players {
		squad = append(squad, models.Player{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(p.Name),
			Role: strings.TrimSpace(p.Role),
		})
	}
	return squad
}

func findPlayer(squad []models.Player, name string) *models.Player {
	for i := range squad {
		if sameName(squad[i].Name, name) {
			p := squad[i]
			return &p
		}
	}
	return nil
}

func playerName(p *models.Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func assignLeadership(team *models.Team, captain, viceCaptain string) error {
	if strings.TrimSpace(captain) == "" || strings.TrimSpace(viceCaptain) == "" {
		return ErrCaptainRequired
	}
	team.Captain = findPlayer(team.Squad, captain)
	team.ViceCaptain = findPlayer(team.Squad, viceCaptain)
	if team.Captain == nil || team.ViceCaptain == nil {
		return ErrCaptainNotInSquad
	}
	return nil
}

func validateTeam(team *models.Team) error {
	if team.Name == "" {
		return fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	if len(team.Squad) < MinSquadSize {
		return fmt.Errorf("%w: need at least %d players, got %d", ErrSquadTooSmall, MinSquadSize, len(team.Squad))
	}
	seen := make(map[string]bool, len(team.Squad))
	for _, p := range team.Squad {
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate player %q", ErrValidationFailed, p.Name)
		}
		seen[key] = true
		if sameName(p.Name, team.Coach) {
			return ErrCoachInSquad
		}
	}
	if team.Captain == nil || team.ViceCaptain == nil {
		return ErrCaptainRequired
	}
	if team.Captain.ID == team.ViceCaptain.ID {
		return ErrCaptainIsViceCaptain
	}
	return nil
}
