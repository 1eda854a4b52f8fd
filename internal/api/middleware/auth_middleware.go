package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type authContextKey string

const (
	userKey  = authContextKey("user")
	tokenKey = authContextKey("token")
)

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// ParseToken validates an upstream-issued session token and returns its
// claims. Shared by the bearer middleware and the session handler.
func (m *AuthMiddleware) ParseToken(tokenString string) (*models.Claims, error) {

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}

		return m.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.UnauthorizedError("Token expired")
	}

	return claims, nil
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))

			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))

			return
		}

		claims, err := m.ParseToken(tokenParts[1])
		if err != nil {
			logger.Warn("Session token rejected", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		ctx := context.WithValue(r.Context(), userKey, claims)
		ctx = context.WithValue(ctx, tokenKey, tokenParts[1])

		requestScopedLogger := logger.With(slog.Int64("user_id", claims.UserID))
		ctx = context.WithValue(ctx, loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func UserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(userKey).(*models.Claims)

	return claims, ok
}

// TokenFromContext returns the raw session token so outbound core API
// calls can forward the caller's identity.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}

	return ""
}
