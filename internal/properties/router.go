package properties

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPropertyRoutes(router *gin.RouterGroup, controller Controller) {
	// Staff routes - any authenticated staff member can view their property
	propertyRoutes := router.Group("/properties")
	propertyRoutes.Use(middleware.JWTAuth())
	{
		propertyRoutes.GET("/:propertyId", controller.GetProperty)
		propertyRoutes.GET("/code/:code", controller.GetPropertyByCode)
	}

	// Admin routes - platform admins manage properties
	adminProperties := router.Group("/admin/properties")
	adminProperties.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminProperties.POST("", controller.CreateProperty)
		adminProperties.GET("", controller.GetAllProperties)
		adminProperties.PUT("/:propertyId", controller.UpdateProperty)
		adminProperties.DELETE("/:propertyId", controller.DeleteProperty)
	}
}
