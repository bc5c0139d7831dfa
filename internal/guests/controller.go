package guests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	CreateGuest(c *gin.Context)
	GetGuest(c *gin.Context)
	GetAllGuests(c *gin.Context)
	UpdateGuest(c *gin.Context)
	DeleteGuest(c *gin.Context)
	GetChatList(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// propertyIDFromContext reads the property scope the JWT middleware stored
func propertyIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("property_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok || str == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *controller) CreateGuest(c *gin.Context) {
	propertyID, ok := propertyIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusForbidden, "Staff account is not scoped to a property", nil, nil)
		return
	}

	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	guest, err := ctrl.service.CreateGuest(c.Request.Context(), propertyID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create guest", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Guest created successfully", guest, nil)
}

func (ctrl *controller) GetGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	guest, err := ctrl.service.GetGuestByID(c.Request.Context(), guestID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrGuestNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guest retrieved successfully", guest, nil)
}

func (ctrl *controller) GetAllGuests(c *gin.Context) {
	propertyID, ok := propertyIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusForbidden, "Staff account is not scoped to a property", nil, nil)
		return
	}

	var query GuestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetAllGuests(c.Request.Context(), propertyID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guests retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	guest, err := ctrl.service.UpdateGuest(c.Request.Context(), guestID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrGuestNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guest updated successfully", guest, nil)
}

func (ctrl *controller) DeleteGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteGuest(c.Request.Context(), guestID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrGuestNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guest deleted successfully", nil, nil)
}

func (ctrl *controller) GetChatList(c *gin.Context) {
	propertyID, ok := propertyIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusForbidden, "Staff account is not scoped to a property", nil, nil)
		return
	}

	entries, err := ctrl.service.GetChatList(c.Request.Context(), propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Chat list retrieved successfully", entries, nil)
}
