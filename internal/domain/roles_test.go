package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleStudent, RoleCounselor, RoleParent, RoleCollegeRep} {
		assert.True(t, role.Valid(), role)
	}

	assert.False(t, Role("moderator").Valid())
	assert.False(t, Role("").Valid())
}

func TestCheckRole(t *testing.T) {
	assert.True(t, CheckRole(RoleAdmin, RoleAdmin, RoleCounselor))
	assert.False(t, CheckRole(RoleStudent, RoleAdmin, RoleCounselor))

	// Empty required set allows any role.
	assert.True(t, CheckRole(RoleParent))
}

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleAdmin, CapManageUsers))
	assert.False(t, Can(RoleStudent, CapManageUsers))

	assert.True(t, Can(RoleStudent, CapApplyToColleges))
	assert.False(t, Can(RoleCollegeRep, CapApplyToColleges))

	assert.True(t, Can(RoleCollegeRep, CapManageCollegeProfile))
	assert.True(t, Can(RoleCounselor, CapManageLeads))

	assert.False(t, Can(RoleAdmin, Capability("unknown-capability")))
}

func TestPermissionsOnlyNameValidRoles(t *testing.T) {
	for capability, roles := range Permissions {
		assert.NotEmpty(t, roles, capability)
		for _, role := range roles {
			assert.True(t, role.Valid(), "%s grants invalid role %q", capability, role)
		}
	}
}
