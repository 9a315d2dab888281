package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agencyhub/community-service/internal/config"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound indicates a missing, expired, or revoked session.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager issues and resolves server-side sessions. The session
// record in Redis holds only the user id; the cookie value is a signed
// token whose subject is the session id. Role and profile data are never
// cached in the session and get re-loaded from the store per request.
type SessionManager struct {
	client *redis.Client
	cfg    config.SessionConfig
	secret []byte
}

// NewSessionManager constructs a manager over the shared Redis client.
func NewSessionManager(client *redis.Client, cfg config.SessionConfig) *SessionManager {
	return &SessionManager{client: client, cfg: cfg, secret: []byte(cfg.Secret)}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieName returns the configured session cookie name.
func (m *SessionManager) CookieName() string {
	return m.cfg.CookieName
}

// SecureCookie reports whether the cookie should carry the Secure flag.
func (m *SessionManager) SecureCookie() bool {
	return m.cfg.SecureCookie
}

// Create stores a new session for the user and returns the signed cookie
// value plus its expiry. Remember-me logins get the extended TTL.
func (m *SessionManager) Create(ctx context.Context, userID string, remember bool) (string, time.Time, error) {
	ttl := m.cfg.TTL()
	if remember {
		ttl = m.cfg.RememberTTL()
	}

	sessionID := uuid.NewString()
	if err := m.client.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store session: %w", err)
	}

	expiresAt := time.Now().Add(ttl)
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Resolve validates the cookie value and returns the user id bound to the
// session. The Redis TTL is authoritative: a valid token whose session has
// expired server-side resolves to ErrSessionNotFound.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (string, error) {
	sessionID, err := m.parseSessionID(cookieValue)
	if err != nil {
		return "", ErrSessionNotFound
	}

	userID, err := m.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	return userID, nil
}

// Revoke deletes the session referenced by the cookie value.
func (m *SessionManager) Revoke(ctx context.Context, cookieValue string) error {
	sessionID, err := m.parseSessionID(cookieValue)
	if err != nil {
		return ErrSessionNotFound
	}
	return m.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (m *SessionManager) parseSessionID(cookieValue string) (string, error) {
	parsed, err := jwt.ParseWithClaims(cookieValue, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
