package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_SuperAdminAlwaysAllowed(t *testing.T) {
	// Even with an empty granted list and a capability outside the
	// enumerated set, super-admins pass.
	assert.True(t, Authorize(AdminRoleSuperAdmin, nil, PermissionDelete))
	assert.True(t, Authorize(AdminRoleSuperAdmin, []AdminPermission{}, PermissionManageSubAdmins))
	assert.True(t, Authorize(AdminRoleSuperAdmin, nil, AdminPermission("launch-missiles")))
}

func TestAuthorize_SubAdminNeedsMembership(t *testing.T) {
	granted := []AdminPermission{PermissionRead, PermissionUpdate}

	assert.True(t, Authorize(AdminRoleSubAdmin, granted, PermissionRead))
	assert.True(t, Authorize(AdminRoleSubAdmin, granted, PermissionUpdate))
	assert.False(t, Authorize(AdminRoleSubAdmin, granted, PermissionDelete))
	assert.False(t, Authorize(AdminRoleSubAdmin, granted, PermissionManageSubAdmins))
}

func TestAuthorize_EmptyGrantDeniesEverything(t *testing.T) {
	for _, p := range AllPermissions {
		assert.False(t, Authorize(AdminRoleSubAdmin, nil, p), "nil grant should deny %s", p)
		assert.False(t, Authorize(AdminRoleSubAdmin, []AdminPermission{}, p), "empty grant should deny %s", p)
	}
}

func TestParsePermissions(t *testing.T) {
	perms, err := ParsePermissions([]string{"read", "manage-sub-admins"})
	require.NoError(t, err)
	assert.Equal(t, []AdminPermission{PermissionRead, PermissionManageSubAdmins}, perms)

	_, err = ParsePermissions([]string{"read", "root"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "root")

	perms, err = ParsePermissions(nil)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestHasValidVerifyToken(t *testing.T) {
	now := time.Now()
	future := now.Add(30 * time.Minute)
	past := now.Add(-time.Minute)

	admin := &Admin{VerifyToken: "tok", TokenExpiry: &future}
	assert.True(t, admin.HasValidVerifyToken("tok", now))
	assert.False(t, admin.HasValidVerifyToken("other", now))

	admin.TokenExpiry = &past
	assert.False(t, admin.HasValidVerifyToken("tok", now))

	admin = &Admin{}
	assert.False(t, admin.HasValidVerifyToken("", now))
}

func TestHasValidResetToken(t *testing.T) {
	now := time.Now()
	future := now.Add(30 * time.Minute)

	admin := &Admin{ResetPasswordToken: "reset", ResetPasswordExpiry: &future}
	assert.True(t, admin.HasValidResetToken("reset", now))
	assert.False(t, admin.HasValidResetToken("", now))
	assert.False(t, admin.HasValidResetToken("reset", future.Add(time.Second)))
}
