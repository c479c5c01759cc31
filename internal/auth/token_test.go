package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30)
	user := &domain.User{ID: "u-1", Role: domain.RoleAdmin}

	token, expiresAt, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("secret-a", 30)
	other := auth.NewTokenManager("secret-b", 30)

	token, _, err := tm.GenerateToken(&domain.User{ID: "u-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}
