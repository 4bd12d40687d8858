package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/google/uuid"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminEmailConflict = errors.New("admin email conflict")
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id string) error
}

type postgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) AdminRepository {
	return &postgresAdminRepository{db: db}
}

const adminColumns = `id, name, email, password_hash, otp, otp_generated_at, verified, created_at`

func (r *postgresAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}

	query := `
		INSERT INTO admins (id, name, email, password_hash, otp, otp_generated_at, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.OTP,
		admin.OTPGeneratedAt,
		admin.Verified,
	).Scan(&admin.CreatedAt)
	if err != nil {
		if constraint, ok := pqConstraint(err, pqUniqueViolation); ok && constraint == "admins_email_key" {
			return ErrAdminEmailConflict
		}
		return err
	}
	return nil
}

func (r *postgresAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresAdminRepository) scanOne(row *sql.Row) (*models.Admin, error) {
	var admin models.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.OTP,
		&admin.OTPGeneratedAt,
		&admin.Verified,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *postgresAdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	query := `
		UPDATE admins
		SET name = $1, email = $2, password_hash = $3, otp = $4, otp_generated_at = $5, verified = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.OTP,
		admin.OTPGeneratedAt,
		admin.Verified,
		admin.ID,
	)
	if err != nil {
		if constraint, ok := pqConstraint(err, pqUniqueViolation); ok && constraint == "admins_email_key" {
			return ErrAdminEmailConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrAdminNotFound)
}

func (r *postgresAdminRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAdminNotFound)
}
