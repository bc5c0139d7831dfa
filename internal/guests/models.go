package guests

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is a hotel guest reachable over SMS
type Guest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;index;not null" json:"property_id"`
	FirstName  string    `gorm:"not null;size:100" json:"first_name"`
	LastName   string    `gorm:"not null;size:100" json:"last_name"`
	Phone      string    `gorm:"not null;size:32;index" json:"phone"`
	Email      string    `gorm:"size:255" json:"email"`
	RoomNumber string    `gorm:"size:20" json:"room_number"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guest) TableName() string {
	return "guests"
}

func (g *Guest) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type GuestResponse struct {
	ID           string     `json:"id"`
	PropertyID   string     `json:"property_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	RoomNumber   string     `json:"room_number"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (g *Guest) ToResponse() GuestResponse {
	return GuestResponse{
		ID:           g.ID.String(),
		PropertyID:   g.PropertyID.String(),
		FirstName:    g.FirstName,
		LastName:     g.LastName,
		Phone:        g.Phone,
		Email:        g.Email,
		RoomNumber:   g.RoomNumber,
		CheckInTime:  g.CheckInTime,
		CheckOutTime: g.CheckOutTime,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type CreateGuestRequest struct {
	FirstName    string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string     `json:"last_name" binding:"required,min=1,max=100"`
	Phone        string     `json:"phone" binding:"required,e164"`
	Email        string     `json:"email" binding:"omitempty,email"`
	RoomNumber   string     `json:"room_number" binding:"omitempty,max=20"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

type UpdateGuestRequest struct {
	FirstName    *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone        *string    `json:"phone" binding:"omitempty,e164"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	RoomNumber   *string    `json:"room_number" binding:"omitempty,max=20"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

type GuestListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Stage  string `form:"stage" binding:"omitempty,oneof=RESERVATION IN_HOUSE CHECKED_OUT"`
}

type PaginatedGuests struct {
	Guests     []GuestResponse `json:"guests"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ChatListEntry is one row on the front-desk messaging dashboard
type ChatListEntry struct {
	GuestID            string     `json:"guest_id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Phone              string     `json:"phone"`
	RoomNumber         string     `json:"room_number"`
	CurrentStatus      string     `json:"current_status"`
	ReservationStatus  string     `json:"reservation_status"`
	EarlyCheckInStatus string     `json:"early_check_in_status"`
	LateCheckOutStatus string     `json:"late_check_out_status"`
	PreArrivalStatus   string     `json:"pre_arrival_status"`
	LastMessageAt      *time.Time `json:"last_message_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
