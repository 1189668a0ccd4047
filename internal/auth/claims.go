package auth

import (
	"time"
)

// Token use markers. Access tokens authorize API calls; refresh tokens may
// only be exchanged for new access tokens.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// Claims represents the claims stored in a PASETO token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TokenUse string `json:"token_use"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// TTL returns the remaining lifetime of the token. Used when revoking a
// token ID so the revocation entry expires together with the token itself.
func (c *Claims) TTL() time.Duration {
	return time.Until(c.Expiration)
}
