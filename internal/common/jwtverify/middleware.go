package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/tasklist/backend/internal/common/http"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/observability/metrics"
)

type Claims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

const bearerPrefix = "bearer "

func Middleware(secret string, clk clock.Clock, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.JWTValidationsTotal.Inc()

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				metrics.JWTValidationsFailed.WithLabelValues("missing").Inc()
				log.WithFields(r.Context(), logger.Fields{
					"action": "jwt_auth_failed",
					"path":   r.URL.Path,
				}).Warn("missing bearer token")
				commonhttp.HandleError(w, r, commonerrors.ErrMissingToken, log)
				return
			}

			claims, err := ParseToken(tokenString, secretBytes, clk.Now)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, commonerrors.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.JWTValidationsFailed.WithLabelValues(reason).Inc()
				log.WithFields(r.Context(), logger.Fields{
					"action": "jwt_auth_failed",
					"path":   r.URL.Path,
					"reason": reason,
				}).Warnf("token rejected: %v", err)
				commonhttp.HandleError(w, r, err, log)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// ParseToken verifies an HS256 token and returns its claims. Expired tokens
// yield ErrTokenExpired; every other failure yields ErrInvalidToken.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	var registered jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &registered, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, commonerrors.ErrTokenExpired.WithCause(err)
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	if registered.Subject == "" {
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("missing sub claim"))
	}

	claims := Claims{
		UserID:  registered.Subject,
		TokenID: registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
