package messaging

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	GetMessagesForGuest(c *gin.Context)
	HealthCheck(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetMessagesForGuest returns the SMS history for a guest, most recent first
func (ctrl *controller) GetMessagesForGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := ctrl.service.GetMessagesForGuest(guestID, limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Messages retrieved successfully", messages, nil)
}

func (ctrl *controller) HealthCheck(c *gin.Context) {
	if err := ctrl.service.HealthCheck(c.Request.Context()); err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Messaging pipeline unhealthy", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Messaging pipeline healthy", nil, nil)
}
