package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// SessionCookie is the fixed key the serialized session is stored under.
const SessionCookie = "pharmatrack_session"

// ErrInvalidSession covers every way a stored session can fail to verify:
// bad signature, garbage payload, expiry. Callers recover by clearing the
// stored value and falling back to the unauthenticated state.
var ErrInvalidSession = errors.New("invalid or expired session")

// Claims embeds the serialized user record inside the session token.
type Claims struct {
	User domain.User `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the signed session tokens that stand in
// for the browser session store.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret and
// session lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue creates a signed session token embedding the user record.
func (tm *TokenManager) Issue(u domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: u,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    "pharmatrack",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a session token, returning the embedded user.
// Every failure maps to ErrInvalidSession.
func (tm *TokenManager) Verify(tokenString string) (domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.User{}, ErrInvalidSession
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !claims.User.Role.Valid() {
		return domain.User{}, ErrInvalidSession
	}
	return claims.User, nil
}
