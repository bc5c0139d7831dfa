package templates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageTemplate is an SMS body keyed by name. A template with a nil
// PropertyID is a global default; a property-scoped row with the same
// name overrides it.
type MessageTemplate struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID *uuid.UUID `json:"property_id" gorm:"type:uuid;index:idx_template_property_name,unique"`
	Name       string     `json:"name" gorm:"not null;index:idx_template_property_name,unique"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	Enabled    bool       `json:"enabled" gorm:"default:true"`
	CreatedBy  uuid.UUID  `json:"created_by" gorm:"type:uuid"`
	UpdatedBy  uuid.UUID  `json:"updated_by" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (mt *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	if mt.ID == uuid.Nil {
		mt.ID = uuid.New()
	}
	return nil
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

// CreateTemplateRequest represents the payload for creating a template
type CreateTemplateRequest struct {
	PropertyID string `json:"property_id" binding:"omitempty,uuid"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Body       string `json:"body" binding:"required,min=1,max=1600"`
	Enabled    *bool  `json:"enabled"`
}

// UpdateTemplateRequest represents the payload for updating a template
type UpdateTemplateRequest struct {
	Body    *string `json:"body" binding:"omitempty,min=1,max=1600"`
	Enabled *bool   `json:"enabled"`
}

// TemplateResponse represents template data returned to clients
type TemplateResponse struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID *uuid.UUID `json:"property_id"`
	Name       string     `json:"name"`
	Body       string     `json:"body"`
	Enabled    bool       `json:"enabled"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PreviewTemplateRequest renders a template body against sample data
type PreviewTemplateRequest struct {
	Body string            `json:"body" binding:"required"`
	Data map[string]string `json:"data"`
}

func (mt *MessageTemplate) ToResponse() TemplateResponse {
	return TemplateResponse{
		ID:         mt.ID,
		PropertyID: mt.PropertyID,
		Name:       mt.Name,
		Body:       mt.Body,
		Enabled:    mt.Enabled,
		CreatedAt:  mt.CreatedAt,
		UpdatedAt:  mt.UpdatedAt,
	}
}
