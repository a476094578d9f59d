package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/utils"
)

// Context keys set by the auth middleware.
const (
	ContextAdminID          = "admin_id"
	ContextAdminRole        = "admin_role"
	ContextAdminPermissions = "admin_permissions"
	ContextUserID           = "user_id"
	ContextUserPhone        = "user_phone"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// AdminAuthenticate validates the bearer token and loads the admin record.
// Deactivated or deleted admins are rejected even when the token itself is
// still valid, so revocation takes effect on the next request.
func AdminAuthenticate(adminRepo interfaces.AdminRepository, secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, utils.ErrNoToken)
			c.Abort()
			return
		}

		claims, err := utils.ValidateAdminToken(tokenString, secretKey)
		if err != nil {
			utils.UnauthorizedResponse(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		admin, err := adminRepo.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil || !admin.IsActive {
			utils.UnauthorizedResponse(c, utils.ErrInactiveAdmin)
			c.Abort()
			return
		}

		c.Set(ContextAdminID, admin.ID)
		c.Set(ContextAdminRole, admin.Role)
		c.Set(ContextAdminPermissions, admin.Permissions)

		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super-admins. Must run after
// AdminAuthenticate.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextAdminRole)
		if !exists || role.(models.AdminRole) != models.AdminRoleSuperAdmin {
			utils.ForbiddenResponse(c, utils.ErrSuperAdminOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission restricts a route to admins holding the given permission.
// Super-admins pass unconditionally. Must run after AdminAuthenticate.
func RequirePermission(required models.AdminPermission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, roleExists := c.Get(ContextAdminRole)
		perms, permsExists := c.Get(ContextAdminPermissions)
		if !roleExists || !permsExists {
			utils.UnauthorizedResponse(c, utils.ErrNoToken)
			c.Abort()
			return
		}

		if !models.Authorize(role.(models.AdminRole), perms.([]models.AdminPermission), required) {
			utils.ForbiddenResponse(c, fmt.Sprintf("Access denied. Missing '%s' permission.", required))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserAuthRequired validates the bearer token for OTP-authenticated end users.
func UserAuthRequired(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, utils.ErrNoToken)
			c.Abort()
			return
		}

		claims, err := utils.ValidateUserToken(tokenString, secretKey)
		if err != nil {
			utils.UnauthorizedResponse(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserPhone, claims.Phone)

		c.Next()
	}
}
