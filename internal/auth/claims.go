package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors what the server puts in its access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes a token without verifying its signature. The client
// has no signing key; it only reads the claims to know when to stop sending
// an expired token. The server stays the authority.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the exp claim is at or before now. Tokens without
// exp never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}
