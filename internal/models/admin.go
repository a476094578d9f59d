package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRole string
type AdminPermission string

const (
	AdminRoleSuperAdmin AdminRole = "super-admin"
	AdminRoleSubAdmin   AdminRole = "sub-admin"

	PermissionCreate          AdminPermission = "create"
	PermissionRead            AdminPermission = "read"
	PermissionUpdate          AdminPermission = "update"
	PermissionDelete          AdminPermission = "delete"
	PermissionManageAdmins    AdminPermission = "manage-admins"
	PermissionManageSubAdmins AdminPermission = "manage-sub-admins"
)

// AllPermissions is the closed capability set. Permission lists arriving over
// the wire are checked against it; anything else is rejected at the boundary.
var AllPermissions = []AdminPermission{
	PermissionCreate,
	PermissionRead,
	PermissionUpdate,
	PermissionDelete,
	PermissionManageAdmins,
	PermissionManageSubAdmins,
}

type Admin struct {
	ID                  primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Email               string              `json:"email" bson:"email"`
	Password            string              `json:"-" bson:"password"`
	Role                AdminRole           `json:"role" bson:"role"`
	Permissions         []AdminPermission   `json:"permissions" bson:"permissions"`
	IsVerified          bool                `json:"is_verified" bson:"is_verified"`
	IsActive            bool                `json:"is_active" bson:"is_active"`
	CreatedBy           *primitive.ObjectID `json:"created_by,omitempty" bson:"created_by,omitempty"`
	VerifyToken         string              `json:"-" bson:"verify_token,omitempty"`
	TokenExpiry         *time.Time          `json:"-" bson:"token_expiry,omitempty"`
	ResetPasswordToken  string              `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpiry *time.Time          `json:"-" bson:"reset_password_expiry,omitempty"`
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" bson:"updated_at"`
}

// Authorize decides whether an admin with the given role and granted
// permissions may perform an action requiring the given permission.
// Super-admins bypass the granted list entirely, including for capability
// strings outside the enumerated set. A nil or empty granted list denies
// everything else.
func Authorize(role AdminRole, granted []AdminPermission, required AdminPermission) bool {
	if role == AdminRoleSuperAdmin {
		return true
	}

	for _, p := range granted {
		if p == required {
			return true
		}
	}
	return false
}

// HasPermission reports whether the admin may perform an action requiring the
// given permission.
func (a *Admin) HasPermission(required AdminPermission) bool {
	return Authorize(a.Role, a.Permissions, required)
}

func IsValidPermission(p AdminPermission) bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermissions converts raw capability strings into typed permissions,
// rejecting anything outside the enumerated set.
func ParsePermissions(raw []string) ([]AdminPermission, error) {
	perms := make([]AdminPermission, 0, len(raw))
	for _, r := range raw {
		p := AdminPermission(r)
		if !IsValidPermission(p) {
			return nil, fmt.Errorf("unknown permission %q", r)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

// HasValidVerifyToken reports whether the stored email verification token
// matches and has not expired.
func (a *Admin) HasValidVerifyToken(token string, now time.Time) bool {
	return a.VerifyToken != "" && a.VerifyToken == token &&
		a.TokenExpiry != nil && now.Before(*a.TokenExpiry)
}

// HasValidResetToken reports whether the stored password reset token matches
// and has not expired.
func (a *Admin) HasValidResetToken(token string, now time.Time) bool {
	return a.ResetPasswordToken != "" && a.ResetPasswordToken == token &&
		a.ResetPasswordExpiry != nil && now.Before(*a.ResetPasswordExpiry)
}
