package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uisgo/uisgo-backend/internal/app/models"
)

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(models.RoleStudent, AnyUser))
	assert.True(t, RoleAllowed(models.RoleSuperuser, AnyUser))
	assert.False(t, RoleAllowed(models.RoleMarketManager, AnyUser))

	assert.True(t, RoleAllowed(models.RoleMarketManager, AnyUserWithMarket))

	assert.True(t, RoleAllowed(models.RoleProfessor, Creators))
	assert.False(t, RoleAllowed(models.RoleStudent, Creators))

	assert.True(t, RoleAllowed(models.RoleCommunications, NewsEditors))
	assert.False(t, RoleAllowed(models.RoleCommunications, Creators))

	assert.True(t, RoleAllowed(models.RoleMarketManager, MarketManagers))
	assert.False(t, RoleAllowed(models.RoleProfessor, MarketManagers))

	assert.True(t, RoleAllowed(models.RoleSuperuser, SuperOnly))
	assert.False(t, RoleAllowed(models.RoleProfessor, SuperOnly))

	assert.True(t, RoleAllowed(models.RoleStudent, StudentsOnly))
	assert.False(t, RoleAllowed(models.RoleSuperuser, StudentsOnly))
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, IsPrivileged(models.RoleSuperuser))
	assert.True(t, IsPrivileged(models.RoleMarketManager))
	assert.False(t, IsPrivileged(models.RoleStudent))
	assert.False(t, IsPrivileged(models.RoleProfessor))
	assert.False(t, IsPrivileged(models.RoleCommunications))
}
