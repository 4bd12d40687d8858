package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
)

// TokenAuthenticator проверяет bearer-токен и возвращает администратора.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

// Authenticate требует заголовок "Authorization: Bearer <token>" и кладет
// администратора и сам токен в контекст запроса.
func Authenticate(auth TokenAuthenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing or malformed authorization header")
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug("token rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal, token)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
