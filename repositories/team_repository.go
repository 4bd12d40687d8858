package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameConflict  = errors.New("team name conflict")
	ErrTeamLeagueInvalid = errors.New("team league conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	// GetByName matches names case-insensitively.
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
	DeleteByLeague(ctx context.Context, exec SQLExecutor, leagueID string) (int64, error)
	// AssignLeague привязывает команду без лиги к указанной лиге.
	AssignLeague(ctx context.Context, exec SQLExecutor, teamID, leagueID string) error
	// DeleteByLeagueExcept удаляет команды лиги, чьих id нет в keepIDs.
	DeleteByLeagueExcept(ctx context.Context, exec SQLExecutor, leagueID string, keepIDs []string) (int64, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, COALESCE(league_id::text, ''), name, coach, squad, captain, vice_captain, logo_key, created_at`

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	args, err := teamArgs(team)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO teams (league_id, name, coach, squad, captain, vice_captain, logo_key, id)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err = executor(r.db, exec).QueryRowContext(ctx, query, append(args, team.ID)...).Scan(&team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE lower(name) = lower($1)`
	return scanTeam(executor(r.db, exec).QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name ASC`)
}

func (r *postgresTeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams WHERE league_id = $1 ORDER BY name ASC`, leagueID)
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	args, err := teamArgs(team)
	if err != nil {
		return err
	}

	query := `
		UPDATE teams
		SET league_id = NULLIF($1, '')::uuid, name = $2, coach = $3, squad = $4, captain = $5, vice_captain = $6, logo_key = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query, append(args, team.ID)...)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) DeleteByLeague(ctx context.Context, exec SQLExecutor, leagueID string) (int64, error) {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM teams WHERE league_id = $1`, leagueID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresTeamRepository) AssignLeague(ctx context.Context, exec SQLExecutor, teamID, leagueID string) error {
	query := `UPDATE teams SET league_id = $1 WHERE id = $2 AND league_id IS NULL`
	result, err := executor(r.db, exec).ExecContext(ctx, query, leagueID, teamID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) DeleteByLeagueExcept(ctx context.Context, exec SQLExecutor, leagueID string, keepIDs []string) (int64, error) {
	if keepIDs == nil {
		keepIDs = []string{}
	}
	query := `DELETE FROM teams WHERE league_id = $1 AND NOT (id::text = ANY($2))`
	result, err := executor(r.db, exec).ExecContext(ctx, query, leagueID, pq.Array(keepIDs))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraint(err, pqUniqueViolation); ok && constraint == "teams_name_lower_key" {
		return ErrTeamNameConflict
	}
	if constraint, ok := pqConstraint(err, pqForeignKeyViolation); ok && constraint == "teams_league_id_fkey" {
		return ErrTeamLeagueInvalid
	}
	return err
}

func teamArgs(team *models.Team) ([]interface{}, error) {
	squad, err := toJSONB(team.Squad)
	if err != nil {
		return nil, err
	}
	captain, err := nullableJSONB(team.Captain)
	if err != nil {
		return nil, err
	}
	viceCaptain, err := nullableJSONB(team.ViceCaptain)
	if err != nil {
		return nil, err
	}
	return []interface{}{team.LeagueID, team.Name, team.Coach, squad, captain, viceCaptain, team.LogoKey}, nil
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var (
		team                        models.Team
		squad, captain, viceCaptain []byte
	)
	err := row.Scan(
		&team.ID,
		&team.LeagueID,
		&team.Name,
		&team.Coach,
		&squad,
		&captain,
		&viceCaptain,
		&team.LogoKey,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if err := fromJSONB(squad, &team.Squad); err != nil {
		return nil, err
	}
	if team.Squad == nil {
		team.Squad = []models.Player{}
	}
	if len(captain) > 0 {
		team.Captain = &models.Player{}
		if err := fromJSONB(captain, team.Captain); err != nil {
			return nil, err
		}
	}
	if len(viceCaptain) > 0 {
		team.ViceCaptain = &models.Player{}
		if err := fromJSONB(viceCaptain, team.ViceCaptain); err != nil {
			return nil, err
		}
	}
	return &team, nil
}
