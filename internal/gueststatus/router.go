package gueststatus

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupGuestStatusRoutes(router *gin.RouterGroup, controller Controller) {
	statusRoutes := router.Group("/guest-status")
	statusRoutes.Use(middleware.JWTAuth())
	{
		statusRoutes.GET("/:guestId", controller.GetStatus)
		statusRoutes.PUT("/:guestId", controller.UpdateStatus)
		statusRoutes.POST("/:guestId/pre-arrival", controller.SubmitPreArrival)
	}
}
