package gueststatus

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestStatus is the canonical status record, one-to-one with a guest.
type GuestStatus struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"guest_id"`

	CurrentStatus      Stage             `gorm:"type:varchar(20);not null;default:'RESERVATION'" json:"current_status"`
	ReservationStatus  ReservationStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"reservation_status"`
	EarlyCheckInStatus RequestState      `gorm:"type:varchar(20);not null;default:'NOT_REQUESTED'" json:"early_check_in_status"`
	LateCheckOutStatus RequestState      `gorm:"type:varchar(20);not null;default:'NOT_REQUESTED'" json:"late_check_out_status"`
	PreArrivalStatus   PreArrivalStatus  `gorm:"type:varchar(20);not null;default:'NOT_APPLIED'" json:"pre_arrival_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GuestStatus) TableName() string {
	return "guest_statuses"
}

func (gs *GuestStatus) BeforeCreate(tx *gorm.DB) (err error) {
	if gs.ID == uuid.Nil {
		gs.ID = uuid.New()
	}
	return nil
}

// Snapshot is the plain status record the pure functions operate on.
// It carries no persistence concerns so tests and callers can build it freely.
type Snapshot struct {
	CurrentStatus      Stage
	ReservationStatus  ReservationStatus
	EarlyCheckInStatus RequestState
	LateCheckOutStatus RequestState
	PreArrivalStatus   PreArrivalStatus
}

// DefaultSnapshot is the state a guest starts in when their record is created
func DefaultSnapshot() Snapshot {
	return Snapshot{
		CurrentStatus:      StageReservation,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestNotRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}
}

func (gs *GuestStatus) Snapshot() Snapshot {
	return Snapshot{
		CurrentStatus:      gs.CurrentStatus,
		ReservationStatus:  gs.ReservationStatus,
		EarlyCheckInStatus: gs.EarlyCheckInStatus,
		LateCheckOutStatus: gs.LateCheckOutStatus,
		PreArrivalStatus:   gs.PreArrivalStatus,
	}
}

// Apply copies a snapshot back onto the persisted record
func (gs *GuestStatus) Apply(s Snapshot) {
	gs.CurrentStatus = s.CurrentStatus
	gs.ReservationStatus = s.ReservationStatus
	gs.EarlyCheckInStatus = s.EarlyCheckInStatus
	gs.LateCheckOutStatus = s.LateCheckOutStatus
	gs.PreArrivalStatus = s.PreArrivalStatus
}

// UpdateStatusRequest is the generic status-update payload from the dashboard.
// Absent fields keep their current value.
type UpdateStatusRequest struct {
	CurrentStatus      *string `json:"current_status" binding:"omitempty,oneof=RESERVATION IN_HOUSE CHECKED_OUT"`
	ReservationStatus  *string `json:"reservation_status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	EarlyCheckInStatus *string `json:"early_check_in_status" binding:"omitempty,oneof=NOT_REQUESTED REQUESTED ACCEPTED DECLINED"`
	LateCheckOutStatus *string `json:"late_check_out_status" binding:"omitempty,oneof=NOT_REQUESTED REQUESTED ACCEPTED DECLINED"`
	PreArrivalStatus   *string `json:"pre_arrival_status" binding:"omitempty,oneof=NOT_APPLIED APPLIED"`
}

// BuildProposed merges the request onto the current snapshot
func (req *UpdateStatusRequest) BuildProposed(current Snapshot) Snapshot {
	proposed := current
	if req.CurrentStatus != nil {
		proposed.CurrentStatus = Stage(*req.CurrentStatus)
	}
	if req.ReservationStatus != nil {
		proposed.ReservationStatus = ReservationStatus(*req.ReservationStatus)
	}
	if req.EarlyCheckInStatus != nil {
		proposed.EarlyCheckInStatus = RequestState(*req.EarlyCheckInStatus)
	}
	if req.LateCheckOutStatus != nil {
		proposed.LateCheckOutStatus = RequestState(*req.LateCheckOutStatus)
	}
	if req.PreArrivalStatus != nil {
		proposed.PreArrivalStatus = PreArrivalStatus(*req.PreArrivalStatus)
	}
	return proposed
}

type StatusResponse struct {
	GuestID            string    `json:"guest_id"`
	CurrentStatus      string    `json:"current_status"`
	ReservationStatus  string    `json:"reservation_status"`
	EarlyCheckInStatus string    `json:"early_check_in_status"`
	LateCheckOutStatus string    `json:"late_check_out_status"`
	PreArrivalStatus   string    `json:"pre_arrival_status"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (gs *GuestStatus) ToResponse() StatusResponse {
	return StatusResponse{
		GuestID:            gs.GuestID.String(),
		CurrentStatus:      string(gs.CurrentStatus),
		ReservationStatus:  string(gs.ReservationStatus),
		EarlyCheckInStatus: string(gs.EarlyCheckInStatus),
		LateCheckOutStatus: string(gs.LateCheckOutStatus),
		PreArrivalStatus:   string(gs.PreArrivalStatus),
		UpdatedAt:          gs.UpdatedAt,
	}
}
