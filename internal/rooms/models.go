package rooms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomStatusAvailable    RoomStatus = "AVAILABLE"
	RoomStatusOccupied     RoomStatus = "OCCUPIED"
	RoomStatusOutOfService RoomStatus = "OUT_OF_SERVICE"
)

// Room is a physical room belonging to a property
type Room struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_property_room" json:"property_id"`
	Number     string     `gorm:"not null;uniqueIndex:idx_property_room" json:"number"`
	Floor      string     `gorm:"size:10" json:"floor"`
	Type       string     `gorm:"size:50" json:"type"`
	Status     RoomStatus `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'OCCUPIED', 'OUT_OF_SERVICE');default:'AVAILABLE'" json:"status"`
	GuestID    *uuid.UUID `gorm:"type:uuid;index" json:"guest_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Room) IsAvailable() bool {
	return r.Status == RoomStatusAvailable
}

// RoomResponse for API responses
type RoomResponse struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Floor   string `json:"floor"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	GuestID string `json:"guest_id,omitempty"`
	IsHeld  bool   `json:"is_held"`
}

func (r *Room) ToResponse(isHeld bool) RoomResponse {
	resp := RoomResponse{
		ID:     r.ID.String(),
		Number: r.Number,
		Floor:  r.Floor,
		Type:   r.Type,
		Status: string(r.Status),
		IsHeld: isHeld,
	}
	if r.GuestID != nil {
		resp.GuestID = r.GuestID.String()
	}
	return resp
}

type CreateRoomRequest struct {
	Number string `json:"number" binding:"required,min=1,max=20"`
	Floor  string `json:"floor" binding:"omitempty,max=10"`
	Type   string `json:"type" binding:"omitempty,max=50"`
}

type UpdateRoomRequest struct {
	Floor  *string `json:"floor" binding:"omitempty,max=10"`
	Type   *string `json:"type" binding:"omitempty,max=50"`
	Status *string `json:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED OUT_OF_SERVICE"`
}

// Room assignment models
type AssignRoomRequest struct {
	GuestID string `json:"guest_id" binding:"required,uuid"`
}

type RoomAssignmentResponse struct {
	RoomID     string    `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	GuestID    string    `json:"guest_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
