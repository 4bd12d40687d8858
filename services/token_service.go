package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimSubject = "sub"
	jwtClaimEmail   = "email"
	jwtClaimExpires = "exp"
	jwtClaimIssued  = "iat"
)

// TokenManager подписывает и проверяет JWT администраторов (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Issue(admin *models.Admin) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := jwt.MapClaims{
		jwtClaimSubject: admin.ID,
		jwtClaimEmail:   admin.Email,
		jwtClaimExpires: expiresAt.Unix(),
		jwtClaimIssued:  issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates the signature and expiry and returns the token's principal and expiry.
func (m *TokenManager) Parse(tokenString string) (models.Principal, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Principal{}, time.Time{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Principal{}, time.Time{}, ErrAuthenticationFailed
	}

	adminID, _ := claims[jwtClaimSubject].(string)
	email, _ := claims[jwtClaimEmail].(string)
	exp, _ := claims[jwtClaimExpires].(float64)
	if adminID == "" || exp == 0 {
		return models.Principal{}, time.Time{}, fmt.Errorf("%w: missing claims", ErrAuthenticationFailed)
	}

	return models.Principal{AdminID: adminID, Email: email}, time.Unix(int64(exp), 0), nil
}

// TokenBlacklist хранит отозванные токены до истечения их срока действия.
type TokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{revoked: make(map[string]time.Time), now: time.Now}
}

func (b *TokenBlacklist) Revoke(token string, until time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = until
}

func (b *TokenBlacklist) IsRevoked(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[token]
	if !ok {
		return false
	}
	if !b.now().Before(until) {
		delete(b.revoked, token)
		return false
	}
	return true
}

// Prune drops entries whose tokens have already expired and reports how many were removed.
func (b *TokenBlacklist) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	removed := 0
	for token, until := range b.revoked {
		if !now.Before(until) {
			delete(b.revoked, token)
			removed++
		}
	}
	return removed
}
