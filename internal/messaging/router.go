package messaging

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMessagingRoutes(router *gin.RouterGroup, controller Controller) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Use(middleware.JWTAuth())
	{
		messageRoutes.GET("/guest/:guestId", controller.GetMessagesForGuest)
	}

	adminMessages := router.Group("/admin/messages")
	adminMessages.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMessages.GET("/health", controller.HealthCheck)
	}
}
