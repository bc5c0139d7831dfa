package properties

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string    `json:"name" gorm:"not null;size:255"`
	Code     string    `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Address  string    `json:"address" gorm:"type:text"`
	Timezone string    `json:"timezone" gorm:"not null;size:64;default:'UTC'"`

	// Number outbound guest SMS is sent from
	SMSFromNumber string `json:"sms_from_number" gorm:"size:32"`

	CheckInHour  int `json:"check_in_hour" gorm:"default:15;check:check_in_hour >= 0 AND check_in_hour < 24"`
	CheckOutHour int `json:"check_out_hour" gorm:"default:11;check:check_out_hour >= 0 AND check_out_hour < 24"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type PropertyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Address       string    `json:"address"`
	Timezone      string    `json:"timezone"`
	SMSFromNumber string    `json:"sms_from_number"`
	CheckInHour   int       `json:"check_in_hour"`
	CheckOutHour  int       `json:"check_out_hour"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreatePropertyRequest struct {
	Name          string `json:"name" binding:"required,min=3,max=255"`
	Code          string `json:"code" binding:"required,min=2,max=50"`
	Address       string `json:"address" binding:"max=2000"`
	Timezone      string `json:"timezone" binding:"omitempty,max=64"`
	SMSFromNumber string `json:"sms_from_number" binding:"omitempty,e164"`
	CheckInHour   *int   `json:"check_in_hour" binding:"omitempty,min=0,max=23"`
	CheckOutHour  *int   `json:"check_out_hour" binding:"omitempty,min=0,max=23"`
}

type UpdatePropertyRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=3,max=255"`
	Address       *string `json:"address" binding:"omitempty,max=2000"`
	Timezone      *string `json:"timezone" binding:"omitempty,max=64"`
	SMSFromNumber *string `json:"sms_from_number" binding:"omitempty,e164"`
	CheckInHour   *int    `json:"check_in_hour" binding:"omitempty,min=0,max=23"`
	CheckOutHour  *int    `json:"check_out_hour" binding:"omitempty,min=0,max=23"`
}

type PropertyListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

type PaginatedProperties struct {
	Properties []PropertyResponse `json:"properties"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

func (p *Property) ToResponse() PropertyResponse {
	return PropertyResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Code:          p.Code,
		Address:       p.Address,
		Timezone:      p.Timezone,
		SMSFromNumber: p.SMSFromNumber,
		CheckInHour:   p.CheckInHour,
		CheckOutHour:  p.CheckOutHour,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
