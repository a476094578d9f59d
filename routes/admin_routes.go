package routes

import (
	"github.com/gin-gonic/gin"

	"roadwatch/internal/handlers"
	"roadwatch/internal/middleware"
	"roadwatch/internal/repositories/interfaces"
)

// SetupAdminRoutes wires the dashboard auth endpoints.
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, adminRepo interfaces.AdminRepository, jwtSecret string) {
	admin := r.Group("/admin")
	{
		admin.POST("/auth", adminHandler.Authenticate)
		admin.GET("/verify-email/:token", adminHandler.VerifyEmail)
		admin.POST("/forgot-password", adminHandler.ForgotPassword)
		admin.POST("/reset-password/:token", adminHandler.ResetPassword)
		admin.POST("/create-super-admin", adminHandler.CreateSuperAdmin)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuthenticate(adminRepo, jwtSecret))
		{
			protected.PUT("/change-password", adminHandler.ChangePassword)
		}
	}
}
