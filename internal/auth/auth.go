// Package auth validates the access-token cookie issued by the auth service
// and attaches the caller's identity to the request context. Token issuance
// (OAuth login) lives in that service, not here.
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
)

type contextKey struct{}

var userIDKey contextKey

// UserStore resolves the token subject to a known user. *storage.DB
// satisfies it.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*storage.User, error)
}

type Authenticator struct {
	publicKey  *rsa.PublicKey
	cookieName string
	users      UserStore
	logger     *zap.Logger
}

func New(publicKeyPEM []byte, cookieName string, users UserStore, logger *zap.Logger) (*Authenticator, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse JWT public key: %w", err)
	}
	return &Authenticator{
		publicKey:  key,
		cookieName: cookieName,
		users:      users,
		logger:     logger,
	}, nil
}

// Middleware rejects requests without a valid RS256 access-token cookie and
// injects the authenticated user id into the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r)
		if err != nil {
			a.logger.Debug("authentication failed", zap.Error(err))
			http.Error(w, "could not validate credentials", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil {
		return "", errors.New("missing access token cookie")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}

	// The subject must map to a known user row.
	if _, err := a.users.GetUserByID(r.Context(), sub); err != nil {
		return "", fmt.Errorf("user lookup: %w", err)
	}
	return sub, nil
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the authenticated user id from the context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
