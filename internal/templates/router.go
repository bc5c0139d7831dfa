package templates

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTemplateRoutes(router *gin.RouterGroup, controller Controller) {
	templateRoutes := router.Group("/templates")
	templateRoutes.Use(middleware.JWTAuth())
	{
		templateRoutes.GET("/property/:propertyId", controller.GetTemplatesForProperty)
		templateRoutes.GET("/:templateId", controller.GetTemplate)
		templateRoutes.POST("/preview", controller.PreviewTemplate)
	}

	// Admin routes - template authoring is an admin concern
	adminTemplates := router.Group("/admin/templates")
	adminTemplates.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTemplates.POST("", controller.CreateTemplate)
		adminTemplates.PUT("/:templateId", controller.UpdateTemplate)
		adminTemplates.DELETE("/:templateId", controller.DeleteTemplate)
	}
}
