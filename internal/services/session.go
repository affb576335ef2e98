package services

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/moodlog/api/internal/types"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "moodlog_session"

	// SessionTTL is the fixed lifetime of an issued session.
	SessionTTL = 24 * time.Hour
)

// sessionSecret is process-wide, set once at startup and read-only after.
var sessionSecret []byte

// InitSessionSecret configures the session signing secret. Call once from
// main before serving requests.
func InitSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

// SessionClaims is the JWT payload of a session token.
type SessionClaims struct {
	UserID uint `json:"uid"`
	jwtlib.RegisteredClaims
}

// IssueToken signs a session token encoding the user's id, expiring after
// SessionTTL. The token is tamper-evident and self-expiring; no server-side
// state is kept.
func IssueToken(userID uint) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ResolveToken validates a session token's signature and expiry and returns
// the user id it was issued for. Any failure is Unauthenticated; the caller
// decides whether that means a 401 or an anonymous request.
func ResolveToken(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, types.NewUnauthenticated("missing session")
	}

	token, err := jwtlib.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sessionSecret, nil
	})
	if err != nil {
		return 0, types.NewUnauthenticated("invalid or expired session")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, types.NewUnauthenticated("invalid or expired session")
	}
	return claims.UserID, nil
}
