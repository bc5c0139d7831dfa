package checkinout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/gueststatus"
	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	CreateRequest(c *gin.Context)
	DecideRequest(c *gin.Context)
	GetGuestRequests(c *gin.Context)
	GetOutstandingRequests(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func scopedPropertyID(c *gin.Context) (uuid.UUID, bool) {
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

func (ctrl *controller) CreateRequest(c *gin.Context) {
	propertyID, ok := scopedPropertyID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusForbidden, "Staff account is not scoped to a property", nil, nil)
		return
	}

	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	request, err := ctrl.service.CreateRequest(c.Request.Context(), propertyID, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateRequest):
			response.RespondJSON(c, "error", http.StatusConflict, "An outstanding request of this type already exists", nil, nil)
		case errors.Is(err, ErrInvalidRequestType):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown request type", nil, nil)
		case errors.Is(err, gueststatus.ErrIllegalTransition):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Guest status does not allow this request", nil, err.Error())
		case errors.Is(err, gueststatus.ErrStatusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Guest status not found", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create request", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Request created successfully", request, nil)
}

func (ctrl *controller) DecideRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request ID", nil, err.Error())
		return
	}

	var payload DecisionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffIDRaw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Staff not authenticated", nil, nil)
		return
	}
	staffID, err := uuid.Parse(staffIDRaw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid staff ID format", nil, nil)
		return
	}

	result, err := ctrl.service.ApplyRequestDecision(c.Request.Context(), requestID,
		gueststatus.RequestState(payload.Decision), staffID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Request not found", nil, nil)
		case errors.Is(err, ErrRequestNotPending):
			response.RespondJSON(c, "error", http.StatusConflict, "Request has already been decided", nil, nil)
		case errors.Is(err, ErrInvalidDecision):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Decision must be ACCEPTED or DECLINED", nil, nil)
		case errors.Is(err, gueststatus.ErrIllegalTransition):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Guest status does not allow this decision", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to apply decision", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Decision applied successfully", result, nil)
}

func (ctrl *controller) GetGuestRequests(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	requests, err := ctrl.service.GetRequestsByGuest(c.Request.Context(), guestID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Requests retrieved successfully", requests, nil)
}

func (ctrl *controller) GetOutstandingRequests(c *gin.Context) {
	propertyID, ok := scopedPropertyID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusForbidden, "Staff account is not scoped to a property", nil, nil)
		return
	}

	requests, err := ctrl.service.GetOutstandingRequests(c.Request.Context(), propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Outstanding requests retrieved successfully", requests, nil)
}
