package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchNumberConflict = errors.New("match number already used in league")
	ErrMatchLeagueInvalid  = errors.New("match league conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// CreateBatch inserts matches in order and fills their ids and timestamps.
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	ListByLeague(ctx context.Context, leagueID string) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id string) error
	DeleteByLeague(ctx context.Context, exec SQLExecutor, leagueID string) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, league_id, team1, team2, venue, status, match_type, match_no, scheduled_date, match_overs, created_at`

const insertMatchQuery = `
	INSERT INTO matches (id, league_id, team1, team2, venue, status, match_type, match_no, scheduled_date, match_overs)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	err := executor(r.db, exec).QueryRowContext(ctx, insertMatchQuery,
		match.ID,
		match.LeagueID,
		match.Team1,
		match.Team2,
		match.Venue,
		match.Status,
		match.MatchType,
		match.MatchNo,
		match.ScheduledDate,
		match.MatchOvers,
	).Scan(&match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) error {
	for i := range matches {
		if err := r.Create(ctx, exec, &matches[i]); err != nil {
			return fmt.Errorf("insert match #%d: %w", matches[i].MatchNo, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY scheduled_date ASC, match_no ASC`)
}

func (r *postgresMatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches WHERE league_id = $1 ORDER BY match_no ASC`, leagueID)
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET league_id = $1, team1 = $2, team2 = $3, venue = $4, status = $5, match_type = $6,
			match_no = $7, scheduled_date = $8, match_overs = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		match.LeagueID,
		match.Team1,
		match.Team2,
		match.Venue,
		match.Status,
		match.MatchType,
		match.MatchNo,
		match.ScheduledDate,
		match.MatchOvers,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByLeague(ctx context.Context, exec SQLExecutor, leagueID string) (int64, error) {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM matches WHERE league_id = $1`, leagueID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraint(err, pqUniqueViolation); ok && constraint == "matches_league_match_no_key" {
		return ErrMatchNumberConflict
	}
	if constraint, ok := pqConstraint(err, pqForeignKeyViolation); ok && constraint == "matches_league_id_fkey" {
		return ErrMatchLeagueInvalid
	}
	return err
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.LeagueID,
		&match.Team1,
		&match.Team2,
		&match.Venue,
		&match.Status,
		&match.MatchType,
		&match.MatchNo,
		&match.ScheduledDate,
		&match.MatchOvers,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}
