// Package session owns the authenticated identity of the CLI: the bearer
// token plus the profile it belongs to. A session is either fully populated
// or absent; nothing else in the program mutates it directly.
package session

import (
	"time"

	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the in-memory representation of the authenticated user.
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Valid reports whether the session carries both a token and a profile.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}

// TokenExpired reports whether the bearer token is a JWT whose exp claim
// has passed. Opaque tokens cannot be judged locally and are reported as
// not expired; the server remains the authority either way.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
