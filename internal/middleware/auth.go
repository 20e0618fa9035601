package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/pkg/jwt"
)

// TokenValidator verifies a bearer token and returns its claims
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// AuthConfig configures the Auth middleware
type AuthConfig struct {
	Validator TokenValidator
	// AllowedEmailDomain, when set, rejects tokens whose email is on any
	// other domain. Compared case-insensitively.
	AllowedEmailDomain string
}

// Auth returns a middleware that validates JWT bearer tokens and puts the
// caller's identity on the request context
func Auth(cfg AuthConfig) Middleware {
	domain := strings.ToLower(strings.TrimPrefix(cfg.AllowedEmailDomain, "@"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			claims, err := cfg.Validator.Validate(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			if domain != "" && claims.EmailDomain() != domain {
				model.NewDomainNotAllowedError(domain).WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// UserEmailKey is the context key for user email
const UserEmailKey contextKey = "userEmail"

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail extracts the user email from context
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
