package middleware

import (
	"context"
	"errors"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	tokenContextKey     contextKey = "token"
)

var ErrNoPrincipal = errors.New("principal not found in context")

func WithPrincipal(ctx context.Context, principal models.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, principal)
	return context.WithValue(ctx, tokenContextKey, token)
}

func GetPrincipalFromContext(ctx context.Context) (models.Principal, error) {
	principal, ok := ctx.Value(principalContextKey).(models.Principal)
	if !ok || principal.AdminID == "" {
		return models.Principal{}, ErrNoPrincipal
	}
	return principal, nil
}

// GetTokenFromContext возвращает исходный токен запроса (нужен для logout).
func GetTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", ErrNoPrincipal
	}
	return token, nil
}
