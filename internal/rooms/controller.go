package rooms

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	CreateRoom(c *gin.Context)
	GetRooms(c *gin.Context)
	GetAvailableRooms(c *gin.Context)
	UpdateRoom(c *gin.Context)
	DeleteRoom(c *gin.Context)
	AssignRoom(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateRoom(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.CreateRoom(c.Request.Context(), propertyID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Room created successfully", room, nil)
}

func (ctrl *controller) GetRooms(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetRoomsByProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}

func (ctrl *controller) GetAvailableRooms(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetAvailableRooms(c.Request.Context(), propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Available rooms retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room updated successfully", room, nil)
}

func (ctrl *controller) DeleteRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteRoom(c.Request.Context(), roomID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room deleted successfully", nil, nil)
}

func (ctrl *controller) AssignRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	var req AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	staffID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Staff not authenticated", nil, nil)
		return
	}

	assignment, err := ctrl.service.AssignRoom(c.Request.Context(), roomID, guestID, staffID.(string))
	if err != nil {
		switch err {
		case ErrRoomNotFound:
			response.RespondJSON(c, "error", http.StatusNotFound, "Room not found", nil, nil)
		case ErrRoomNotAvailable:
			response.RespondJSON(c, "error", http.StatusConflict, "Room is not available", nil, nil)
		case ErrRoomAlreadyHeld:
			response.RespondJSON(c, "error", http.StatusConflict, "Room is being assigned by another agent", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room assigned successfully", assignment, nil)
}
