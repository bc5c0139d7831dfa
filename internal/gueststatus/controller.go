package gueststatus

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	GetStatus(c *gin.Context)
	UpdateStatus(c *gin.Context)
	SubmitPreArrival(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetStatus(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	status, err := ctrl.service.GetStatus(c.Request.Context(), guestID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrStatusNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guest status retrieved successfully", status, nil)
}

func (ctrl *controller) UpdateStatus(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	status, err := ctrl.service.UpdateStatus(c.Request.Context(), guestID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStatusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Guest status not found", nil, nil)
		case errors.Is(err, ErrIllegalTransition):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Invalid status transition", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update guest status", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Guest status updated successfully", status, nil)
}

func (ctrl *controller) SubmitPreArrival(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid guest ID", nil, err.Error())
		return
	}

	status, err := ctrl.service.SubmitPreArrival(c.Request.Context(), guestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrStatusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Guest status not found", nil, nil)
		case errors.Is(err, ErrIllegalTransition):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Pre-arrival cannot be applied in the guest's current state", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to submit pre-arrival", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pre-arrival submitted successfully", status, nil)
}
