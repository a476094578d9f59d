package routes

import (
	"github.com/gin-gonic/gin"

	"roadwatch/internal/handlers"
	"roadwatch/internal/middleware"
)

// SetupAuthRoutes wires the phone-OTP endpoints for end users.
func SetupAuthRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/request-otp", userHandler.RequestOTP)
		auth.POST("/verify-otp", userHandler.VerifyOTP)

		protected := auth.Group("")
		protected.Use(middleware.UserAuthRequired(jwtSecret))
		{
			protected.GET("/me", userHandler.Me)
			protected.PUT("/update-profile", userHandler.UpdateProfile)
			protected.POST("/logout", userHandler.Logout)
			protected.DELETE("/delete-account", userHandler.DeleteAccount)
		}
	}
}
