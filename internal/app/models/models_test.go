package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuickActionAllowsRole(t *testing.T) {
	action := QuickAction{AllowedRoles: "student,professor,superuser"}

	assert.True(t, action.AllowsRole(RoleStudent))
	assert.True(t, action.AllowsRole(RoleProfessor))
	assert.True(t, action.AllowsRole(RoleSuperuser))
	assert.False(t, action.AllowsRole(RoleCommunications))
	assert.False(t, action.AllowsRole(RoleMarketManager))
}

func TestQuickActionAllowsRoleWithSpaces(t *testing.T) {
	action := QuickAction{AllowedRoles: "student, market_manager"}

	assert.True(t, action.AllowsRole(RoleStudent))
	assert.True(t, action.AllowsRole(RoleMarketManager))
	assert.False(t, action.AllowsRole(RoleProfessor))
}

func TestQuickActionAllowsRoleEmptyList(t *testing.T) {
	action := QuickAction{AllowedRoles: ""}
	assert.False(t, action.AllowsRole(RoleStudent))
}

func TestValidTurnStatus(t *testing.T) {
	for _, status := range ValidTurnStatuses {
		assert.True(t, ValidTurnStatus(status), status)
	}

	assert.False(t, ValidTurnStatus("cancelled"))
	assert.False(t, ValidTurnStatus(""))
	assert.False(t, ValidTurnStatus("Waiting"))
}
