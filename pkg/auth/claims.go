package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID string
	Email  string
	Role   string
	JTI    string
}

// AccessTokenClaims represents the access token the ordering platform hands to
// a signed-in customer.
type AccessTokenClaims struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal returns the customer id, falling back to the subject claim.
func (c *AccessTokenClaims) Principal() string {
	if c == nil {
		return ""
	}
	if id := strings.TrimSpace(c.UserID); id != "" {
		return id
	}
	return strings.TrimSpace(c.Subject)
}
