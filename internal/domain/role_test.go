package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_LoginOTP_AllRoles(t *testing.T) {
	for _, role := range []string{RoleUser, RoleOperator, RoleBusinessCoach, RoleSuperuser} {
		assert.True(t, Allow(role, ActionLoginOTP), "role %s", role)
	}
}

func TestAllow_ManageUsers(t *testing.T) {
	assert.True(t, Allow(RoleOperator, ActionManageUsers))
	assert.True(t, Allow(RoleSuperuser, ActionManageUsers))
	assert.False(t, Allow(RoleUser, ActionManageUsers))
	assert.False(t, Allow(RoleBusinessCoach, ActionManageUsers))
}

func TestAllow_ManageAllowList_SuperuserOnly(t *testing.T) {
	assert.True(t, Allow(RoleSuperuser, ActionManageAllowList))
	for _, role := range []string{RoleUser, RoleOperator, RoleBusinessCoach} {
		assert.False(t, Allow(role, ActionManageAllowList), "role %s", role)
	}
}

func TestAllow_UnknownRoleOrAction(t *testing.T) {
	assert.False(t, Allow("ghost", ActionLoginOTP))
	assert.False(t, Allow(RoleSuperuser, Action("reboot")))
}
