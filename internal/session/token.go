package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of its own JWT without the
// server's key: enough for display and for warning about imminent expiry.
// It is never used to decide whether the session is valid; the server is
// the only authority on that.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim has passed. A token with no
// exp claim never reads as expired.
func (t TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// TokenInfo decodes the stored token's registered claims without verifying
// the signature. Returns an error when there is no token or it is not a JWT.
func (s *Store) TokenInfo() (*TokenInfo, error) {
	token := s.Token()
	if token == "" {
		return nil, fmt.Errorf("no session token")
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
