package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a session token. Sessions are
// anonymous, so the user id is the only identity carried.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}
