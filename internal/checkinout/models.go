package checkinout

import (
	"time"

	"guestlink/internal/gueststatus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRecord is a guest's ask to adjust their arrival or departure time
type RequestRecord struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID    uuid.UUID   `gorm:"type:uuid;index;not null;uniqueIndex:uniq_outstanding_request_per_type,where:state = 'REQUESTED'" json:"guest_id"`
	PropertyID uuid.UUID   `gorm:"type:uuid;index;not null" json:"property_id"`
	Type       RequestType `gorm:"type:varchar(20);not null;uniqueIndex:uniq_outstanding_request_per_type" json:"type"`

	State gueststatus.RequestState `gorm:"type:varchar(20);not null;default:'REQUESTED'" json:"state"`

	// The time the guest wants to arrive or depart
	RequestedTime time.Time `gorm:"not null" json:"requested_time"`

	DecidedBy *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RequestRecord) TableName() string {
	return "request_records"
}

func (r *RequestRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsOutstanding reports whether the request still awaits a decision
func (r *RequestRecord) IsOutstanding() bool {
	return r.State == gueststatus.RequestRequested
}

type RequestResponse struct {
	ID            string     `json:"id"`
	GuestID       string     `json:"guest_id"`
	Type          string     `json:"type"`
	State         string     `json:"state"`
	RequestedTime time.Time  `json:"requested_time"`
	DecidedBy     string     `json:"decided_by,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (r *RequestRecord) ToResponse() RequestResponse {
	resp := RequestResponse{
		ID:            r.ID.String(),
		GuestID:       r.GuestID.String(),
		Type:          string(r.Type),
		State:         string(r.State),
		RequestedTime: r.RequestedTime,
		DecidedAt:     r.DecidedAt,
		CreatedAt:     r.CreatedAt,
	}
	if r.DecidedBy != nil {
		resp.DecidedBy = r.DecidedBy.String()
	}
	return resp
}

type CreateRequestPayload struct {
	GuestID       string    `json:"guest_id" binding:"required,uuid"`
	Type          string    `json:"type" binding:"required,oneof=EARLY_CHECK_IN LATE_CHECK_OUT"`
	RequestedTime time.Time `json:"requested_time" binding:"required"`
}

type DecisionPayload struct {
	Decision string `json:"decision" binding:"required,oneof=ACCEPTED DECLINED"`
}

// DecisionResult is what applying a decision hands back to the caller
type DecisionResult struct {
	Request     RequestResponse            `json:"request"`
	GuestStatus gueststatus.StatusResponse `json:"guest_status"`
}
