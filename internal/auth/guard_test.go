package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestCanModify(t *testing.T) {
	owner := &domain.User{ID: "u-1", Role: domain.RoleUser}
	admin := &domain.User{ID: "u-2", Role: domain.RoleAdmin}
	other := &domain.User{ID: "u-3", Role: domain.RoleUser}
	issue := &domain.Issue{ID: "i-1", OwnerID: "u-1"}

	assert.True(t, auth.CanModify(owner, issue))
	assert.True(t, auth.CanModify(admin, issue))
	assert.False(t, auth.CanModify(other, issue))
	assert.False(t, auth.CanModify(nil, issue))
	assert.False(t, auth.CanModify(owner, nil))
}

func TestCanListAll(t *testing.T) {
	assert.True(t, auth.CanListAll(&domain.User{Role: domain.RoleAdmin}))
	assert.False(t, auth.CanListAll(&domain.User{Role: domain.RoleUser}))
}
