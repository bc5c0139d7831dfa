package rooms

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoomRoutes(router *gin.RouterGroup, controller Controller) {
	// Staff routes - front desk browses and assigns rooms
	roomRoutes := router.Group("")
	roomRoutes.Use(middleware.JWTAuth())
	{
		roomRoutes.GET("/properties/:propertyId/rooms", controller.GetRooms)
		roomRoutes.GET("/properties/:propertyId/rooms/available", controller.GetAvailableRooms)
		roomRoutes.POST("/rooms/:roomId/assign", controller.AssignRoom)
	}

	// Admin routes - room inventory management
	adminRooms := router.Group("")
	adminRooms.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRooms.POST("/admin/properties/:propertyId/rooms", controller.CreateRoom)
		adminRooms.PUT("/admin/rooms/:roomId", controller.UpdateRoom)
		adminRooms.DELETE("/admin/rooms/:roomId", controller.DeleteRoom)
	}
}
