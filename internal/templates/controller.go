package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestlink/internal/shared/utils/response"
)

type Controller interface {
	CreateTemplate(c *gin.Context)
	GetTemplate(c *gin.Context)
	GetTemplatesForProperty(c *gin.Context)
	UpdateTemplate(c *gin.Context)
	DeleteTemplate(c *gin.Context)
	PreviewTemplate(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func staffUUIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	staffID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(staffID.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (ctrl *controller) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffUUID, ok := staffUUIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Staff not authenticated", nil, nil)
		return
	}

	template, err := ctrl.service.CreateTemplate(staffUUID, req)
	if err != nil {
		switch err {
		case ErrTemplateNameExists:
			response.RespondJSON(c, "error", http.StatusConflict, "Template name already exists", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Template created successfully", template, nil)
}

func (ctrl *controller) GetTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	template, err := ctrl.service.GetTemplateByID(templateID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrTemplateNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template retrieved successfully", template, nil)
}

func (ctrl *controller) GetTemplatesForProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid property ID", nil, err.Error())
		return
	}

	list, err := ctrl.service.GetTemplatesForProperty(propertyID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Templates retrieved successfully", list, nil)
}

func (ctrl *controller) UpdateTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffUUID, ok := staffUUIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Staff not authenticated", nil, nil)
		return
	}

	template, err := ctrl.service.UpdateTemplate(templateID, staffUUID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrTemplateNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template updated successfully", template, nil)
}

func (ctrl *controller) DeleteTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTemplate(templateID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrTemplateNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template deleted successfully", nil, nil)
}

// PreviewTemplate renders an arbitrary body against sample data so staff
// can check a template before saving it.
func (ctrl *controller) PreviewTemplate(c *gin.Context) {
	var req PreviewTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	rendered := RenderBody(req.Body, req.Data)

	response.RespondJSON(c, "success", http.StatusOK, "Template rendered successfully", gin.H{
		"rendered":     rendered,
		"placeholders": Placeholders(req.Body),
	}, nil)
}
