package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/relatewell/genproxy/internal/config"
	"github.com/relatewell/genproxy/pkg/httpext"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
)

// Claims are the bearer token claims accepted by the API.
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scp"`
}

// RequireScope rejects requests without a valid HS256 bearer token carrying scope.
// It is a pass-through when no JWT secret is configured.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.AuthEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractToken(r)
			if tokenString == "" {
				httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return config.GetJWTSecret(), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				log.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected invalid bearer token")
				httpext.JsonError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(claims.Scopes, scope) {
				log.Ctx(r.Context()).Warn().
					Str("required_scope", scope).
					Strs("token_scopes", claims.Scopes).
					Str("path", r.URL.Path).
					Msg("Access denied - token missing required scope")
				httpext.JsonError(w, "Missing required scope", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the validated token claims from the request context
func GetClaims(r *http.Request) *Claims {
	if claims, ok := r.Context().Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
