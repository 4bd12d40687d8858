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
	ErrLeagueNotFound     = errors.New("league not found")
	ErrLeagueNameConflict = errors.New("league name conflict")
	ErrLeagueAdminInvalid = errors.New("league admin conflict or invalid")
)

type LeagueRepository interface {
	Create(ctx context.Context, exec SQLExecutor, league *models.League) error
	GetByID(ctx context.Context, id string) (*models.League, error)
	GetByName(ctx context.Context, name string) (*models.League, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]models.League, error)
	ListByAdmin(ctx context.Context, adminID string) ([]models.League, error)
	Update(ctx context.Context, exec SQLExecutor, league *models.League) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

const leagueColumns = `id, admin_id, name, league_format, no_of_teams, no_of_matches, no_of_overs,
	teams, start_date, end_date, venue, umpires, created_at`

func (r *postgresLeagueRepository) Create(ctx context.Context, exec SQLExecutor, league *models.League) error {
	if league.ID == "" {
		league.ID = uuid.NewString()
	}
	teams, err := toJSONB(league.Teams)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO leagues
			(id, admin_id, name, league_format, no_of_teams, no_of_matches, no_of_overs, teams, start_date, end_date, venue, umpires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	err = executor(r.db, exec).QueryRowContext(ctx, query,
		league.ID,
		league.AdminID,
		league.Name,
		league.Format,
		league.NoOfTeams,
		league.NoOfMatches,
		league.NoOfOvers,
		teams,
		league.StartDate,
		league.EndDate,
		league.Venue,
		pq.Array(league.Umpires),
	).Scan(&league.CreatedAt)

	return r.handleLeagueError(err)
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id string) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`
	return scanLeague(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresLeagueRepository) GetByName(ctx context.Context, name string) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE name = $1`
	return scanLeague(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresLeagueRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM leagues WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresLeagueRepository) List(ctx context.Context) ([]models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues ORDER BY created_at ASC`
	return r.list(ctx, query)
}

func (r *postgresLeagueRepository) ListByAdmin(ctx context.Context, adminID string) ([]models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE admin_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, adminID)
}

func (r *postgresLeagueRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.League, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		league, scanErr := scanLeague(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		leagues = append(leagues, *league)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) Update(ctx context.Context, exec SQLExecutor, league *models.League) error {
	teams, err := toJSONB(league.Teams)
	if err != nil {
		return err
	}

	query := `
		UPDATE leagues
		SET name = $1, league_format = $2, no_of_teams = $3, no_of_matches = $4, no_of_overs = $5,
			teams = $6, start_date = $7, end_date = $8, venue = $9, umpires = $10
		WHERE id = $11`

	result, err := executor(r.db, exec).ExecContext(ctx, query,
		league.Name,
		league.Format,
		league.NoOfTeams,
		league.NoOfMatches,
		league.NoOfOvers,
		teams,
		league.StartDate,
		league.EndDate,
		league.Venue,
		pq.Array(league.Umpires),
		league.ID,
	)
	if err != nil {
		return r.handleLeagueError(err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) handleLeagueError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraint(err, pqUniqueViolation); ok && constraint == "leagues_name_key" {
		return ErrLeagueNameConflict
	}
	if constraint, ok := pqConstraint(err, pqForeignKeyViolation); ok && constraint == "leagues_admin_id_fkey" {
		return ErrLeagueAdminInvalid
	}
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLeague(row rowScanner) (*models.League, error) {
	var (
		league models.League
		teams  []byte
	)
	err := row.Scan(
		&league.ID,
		&league.AdminID,
		&league.Name,
		&league.Format,
		&league.NoOfTeams,
		&league.NoOfMatches,
		&league.NoOfOvers,
		&teams,
		&league.StartDate,
		&league.EndDate,
		&league.Venue,
		pq.Array(&league.Umpires),
		&league.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	if err := fromJSONB(teams, &league.Teams); err != nil {
		return nil, err
	}
	if league.Teams == nil {
		league.Teams = []models.TeamRef{}
	}
	if league.Umpires == nil {
		league.Umpires = []string{}
	}
	return &league, nil
}
