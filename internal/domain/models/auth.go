package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims issued by the identity provider.
// Only the fields the backend consumes are declared; unknown claims are
// ignored during parsing.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"`
	SessionID            string `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated photographer.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}
