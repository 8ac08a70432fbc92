package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string
	// Token is the raw Authorization header, forwarded to downstream services
	Token string
}

type principalKey struct{}

var errMissingToken = errors.New("missing bearer token")

// FromContext returns the principal stored by Middleware
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// Middleware validates an HS256 bearer token and stores its subject as the principal.
// onUnauthorized writes the rejection; it defaults to a plain 401.
func Middleware(secret string, logger *slog.Logger, onUnauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	if onUnauthorized == nil {
		onUnauthorized = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			subject, err := parseSubject(header, []byte(secret))
			if err != nil {
				logger.Warn("unauthorized request", "path", r.URL.Path, "error", err)
				onUnauthorized(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{UserID: subject, Token: header})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseSubject(header string, secret []byte) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errMissingToken
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("token has no subject")
	}
	return subject, nil
}
