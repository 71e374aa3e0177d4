package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/zenkitchen/backend/internal/types"
)

const tokenIssuer = "zenkitchen"

// AuthService issues and validates anonymous session tokens. The user id in
// a token scopes every stored item and recipe.
type AuthService struct {
	jwtSecret string
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		ttl:       ttl,
		now:       time.Now,
	}
}

// IssueAnonymous creates a new session for a fresh user id.
func (s *AuthService) IssueAnonymous() (*types.SessionResponse, error) {
	return s.Issue(uuid.New().String())
}

// Issue signs a token for an existing user id, used to renew a session.
func (s *AuthService) Issue(userID string) (*types.SessionResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &types.SessionResponse{Token: signed, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
