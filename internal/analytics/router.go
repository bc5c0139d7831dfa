package analytics

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Use(middleware.JWTAuth())
	{
		analyticsRoutes.GET("/dashboard/:propertyId", controller.GetDashboard)
	}
}
