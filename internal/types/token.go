package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a session JWT. The site uses a shared
// password gate, so a session UUID stands in for a user identity.
type TokenClaims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID `json:"session_id"`
}
