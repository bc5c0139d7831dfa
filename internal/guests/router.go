package guests

import (
	"guestlink/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupGuestRoutes(router *gin.RouterGroup, controller Controller) {
	guestRoutes := router.Group("/guests")
	guestRoutes.Use(middleware.JWTAuth())
	{
		guestRoutes.POST("", controller.CreateGuest)
		guestRoutes.GET("", controller.GetAllGuests)
		guestRoutes.GET("/chat-list", controller.GetChatList)
		guestRoutes.GET("/:guestId", controller.GetGuest)
		guestRoutes.PUT("/:guestId", controller.UpdateGuest)
		guestRoutes.DELETE("/:guestId", controller.DeleteGuest)
	}
}
