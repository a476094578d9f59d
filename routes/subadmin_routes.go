package routes

import (
	"github.com/gin-gonic/gin"

	"roadwatch/internal/handlers"
	"roadwatch/internal/middleware"
	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
)

// SetupSubAdminRoutes wires sub-admin management. Every route is super-admin
// only; mutating routes additionally require the manage-sub-admins capability.
func SetupSubAdminRoutes(r *gin.RouterGroup, subAdminHandler *handlers.SubAdminHandler, adminRepo interfaces.AdminRepository, jwtSecret string) {
	subadmin := r.Group("/subadmin")
	subadmin.Use(middleware.AdminAuthenticate(adminRepo, jwtSecret), middleware.RequireSuperAdmin())
	{
		subadmin.GET("", subAdminHandler.List)

		manage := subadmin.Group("")
		manage.Use(middleware.RequirePermission(models.PermissionManageSubAdmins))
		{
			manage.POST("", subAdminHandler.Create)
			manage.PUT("/:id", subAdminHandler.Update)
			manage.POST("/:id/reset-password", subAdminHandler.ResetPassword)
			manage.DELETE("/:id", subAdminHandler.Delete)
		}
	}
}
