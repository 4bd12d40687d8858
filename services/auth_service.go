package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"golang.org/x/crypto/bcrypt"
)

const otpValidity = 10 * time.Minute

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*models.Admin, error)
	ResendOTP(ctx context.Context, email string) error
	// VerifyOTP reports true when the account had already been verified.
	VerifyOTP(ctx context.Context, input VerifyOTPInput) (bool, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.Principal, error)
	Me(ctx context.Context, principal models.Principal) (*models.Admin, error)
	DeleteAccount(ctx context.Context, principal models.Principal) error
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"userId"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokens    *TokenManager
	blacklist *TokenBlacklist
	mailer    OTPSender
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(
	adminRepo repositories.AdminRepository,
	tokens *TokenManager,
	blacklist *TokenBlacklist,
	mailer OTPSender,
	logger *slog.Logger,
) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
		blacklist: blacklist,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*models.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrAuthEmailTaken
	}
	if !errors.Is(err, repositories.ErrAdminNotFound) {
		return nil, handleRepositoryError(err, "look up admin")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()

	admin := &models.Admin{
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		PasswordHash:   string(hashedPassword),
		OTP:            &otp,
		OTPGeneratedAt: &generatedAt,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, handleRepositoryError(err, "create admin")
	}

	s.sendOTP(admin, otp)
	return admin, nil
}

func (s *authService) ResendOTP(ctx context.Context, email string) error {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return handleRepositoryError(err, "look up admin")
	}
	if admin.Verified {
		return nil
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	generatedAt := s.now()
	admin.OTP = &otp
	admin.OTPGeneratedAt = &generatedAt
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return handleRepositoryError(err, "store otp")
	}

	s.sendOTP(admin, otp)
	return nil
}

func (s *authService) sendOTP(admin *models.Admin, otp string) {
	if err := s.mailer.SendOTPEmail(admin.Email, admin.Name, otp); err != nil {
		s.logger.Error("failed to send otp email", slog.String("admin_id", admin.ID), slog.Any("error", err))
	}
}

func (s *authService) VerifyOTP(ctx context.Context, input VerifyOTPInput) (bool, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return false, handleRepositoryError(err, "look up admin")
	}
	if admin.Verified {
		return true, nil
	}
	if admin.OTP == nil || *admin.OTP != strings.TrimSpace(input.OTP) {
		return false, ErrInvalidOTP
	}
	if admin.OTPGeneratedAt == nil || s.now().Sub(*admin.OTPGeneratedAt) > otpValidity {
		return false, ErrOTPExpired
	}

	admin.Verified = true
	admin.OTP = nil
	admin.OTPGeneratedAt = nil
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return false, handleRepositoryError(err, "verify admin")
	}
	return false, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	if !admin.Verified {
		return nil, ErrEmailNotVerified
	}

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, AdminID: admin.ID, ExpiresAt: expiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	_, expiresAt, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	s.blacklist.Revoke(token, expiresAt)
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	if s.blacklist.IsRevoked(token) {
		return models.Principal{}, fmt.Errorf("%w: token has been revoked", ErrAuthenticationFailed)
	}
	principal, _, err := s.tokens.Parse(token)
	return principal, err
}

func (s *authService) Me(ctx context.Context, principal models.Principal) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, principal.AdminID)
	if err != nil {
		return nil, handleRepositoryError(err, "get admin")
	}
	return admin, nil
}

// DeleteAccount удаляет администратора; лиги, команды и матчи удаляются каскадом в БД.
func (s *authService) DeleteAccount(ctx context.Context, principal models.Principal) error {
	if err := s.adminRepo.Delete(ctx, principal.AdminID); err != nil {
		return handleRepositoryError(err, "delete admin")
	}
	s.logger.Info("admin account deleted", slog.String("admin_id", principal.AdminID))
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
