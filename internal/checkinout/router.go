package checkinout

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCheckInOutRoutes(router *gin.RouterGroup, controller Controller) {
	requestRoutes := router.Group("/checkinout")
	requestRoutes.Use(middleware.JWTAuth())
	{
		requestRoutes.POST("/requests", controller.CreateRequest)
		requestRoutes.GET("/requests/outstanding", controller.GetOutstandingRequests)
		requestRoutes.GET("/requests/guest/:guestId", controller.GetGuestRequests)
		requestRoutes.PUT("/requests/:requestId/decision", controller.DecideRequest)
	}
}
