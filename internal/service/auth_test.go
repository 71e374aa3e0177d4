package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/zenkitchen/backend/internal/service"
)

func TestAuthServiceIssueAndValidate(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Hour)

	session, err := auth.IssueAnonymous()
	require.NoError(t, err)
	assert.NotEmpty(t, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	claims, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, claims.UserID)

	renewed, err := auth.Issue(session.UserID)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, renewed.UserID)
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Hour)
	other := service.NewAuthService("other-secret", time.Hour)
	expired := service.NewAuthService("test-secret", -time.Minute)

	foreign, err := other.IssueAnonymous()
	require.NoError(t, err)
	stale, err := expired.IssueAnonymous()
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign.Token,
		"expired":      stale.Token,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ValidateToken(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}
