package properties

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	CreateProperty(c *gin.Context)
	GetProperty(c *gin.Context)
	GetPropertyByCode(c *gin.Context)
	UpdateProperty(c *gin.Context)
	DeleteProperty(c *gin.Context)
	GetAllProperties(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	property, err := ctrl.service.CreateProperty(adminUUID, req)
	if err != nil {
		switch err {
		case ErrPropertyCodeExists:
			response.RespondJSON(c, "error", http.StatusConflict, "Property code already exists", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Property created successfully", property, nil)
}

func (ctrl *controller) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	property, err := ctrl.service.GetPropertyByID(propertyID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPropertyNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Property retrieved successfully", property, nil)
}

func (ctrl *controller) GetPropertyByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Property code is required", nil, nil)
		return
	}

	property, err := ctrl.service.GetPropertyByCode(code)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPropertyNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Property retrieved successfully", property, nil)
}

func (ctrl *controller) UpdateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	property, err := ctrl.service.UpdateProperty(propertyID, adminUUID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPropertyNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Property updated successfully", property, nil)
}

func (ctrl *controller) DeleteProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteProperty(propertyID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPropertyNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Property deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllProperties(c *gin.Context) {
	var query PropertyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetAllProperties(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Properties retrieved successfully", result, nil)
}
