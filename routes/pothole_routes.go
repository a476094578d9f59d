package routes

import (
	"github.com/gin-gonic/gin"

	"roadwatch/internal/handlers"
)

// SetupPotholeRoutes wires report submission and management. Reports come in
// from the public mobile client, so these routes carry no auth.
func SetupPotholeRoutes(r *gin.RouterGroup, potholeHandler *handlers.PotholeHandler) {
	potholes := r.Group("/potholes")
	{
		potholes.POST("", potholeHandler.Create)
		potholes.GET("", potholeHandler.List)
		potholes.GET("/:id", potholeHandler.Get)
		potholes.PUT("/:id", potholeHandler.UpdateStatus)
		potholes.DELETE("/:id", potholeHandler.Delete)
	}

	r.GET("/stats", potholeHandler.Stats)
}
