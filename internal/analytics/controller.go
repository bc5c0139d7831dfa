package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	GetDashboard(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboard(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	dashboard, err := ctrl.service.GetDashboard(c.Request.Context(), propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Dashboard retrieved successfully", dashboard, nil)
}
