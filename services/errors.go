package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrTeamCountMismatch    = errors.New("number of teams does not match the team list")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrSquadTooSmall        = errors.New("squad is too small")
	ErrCoachInSquad         = errors.New("coach cannot be a squad member")
	ErrCaptainRequired      = errors.New("captain and vice-captain are required")
	ErrCaptainNotInSquad    = errors.New("captain and vice-captain must be squad members")
	ErrCaptainIsViceCaptain = errors.New("captain and vice-captain must be different players")
	ErrTeamNotInLeague      = errors.New("team is not part of the league")
	ErrSameTeams            = errors.New("a team cannot play against itself")
	ErrInvalidMatchStatus   = errors.New("invalid match status")
	ErrInvalidMatchType     = errors.New("invalid match type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// Ошибки конфликтов
	ErrAuthEmailTaken      = errors.New("email is already taken")
	ErrLeagueNameConflict  = errors.New("league name already exists")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrMatchNumberConflict = errors.New("match number is already used in this league")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrEmailNotVerified       = errors.New("email is not verified")
	ErrInvalidOTP             = errors.New("invalid otp")
	ErrOTPExpired             = errors.New("otp has expired")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrAdminNotFound  = errors.New("admin not found")
	ErrLeagueNotFound = errors.New("league not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrNoLeagues      = errors.New("no leagues found to delete")

	ErrStorageUnavailable = errors.New("file storage is not configured")
)
