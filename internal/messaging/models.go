package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageStatusQueued   MessageStatus = "QUEUED"
	MessageStatusSending  MessageStatus = "SENDING"
	MessageStatusSent     MessageStatus = "SENT"
	MessageStatusFailed   MessageStatus = "FAILED"
	MessageStatusRetrying MessageStatus = "RETRYING"
	MessageStatusExpired  MessageStatus = "EXPIRED"
)

// MessageLog is the persisted record of an outbound guest SMS. A row is
// created QUEUED when the message enters the pipeline and moved to its
// terminal status by the worker that processes it.
type MessageLog struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	GuestID      uuid.UUID  `json:"guest_id" gorm:"type:uuid;not null;index"`
	PropertyID   uuid.UUID  `json:"property_id" gorm:"type:uuid;not null;index"`
	ToNumber     string     `json:"to_number" gorm:"not null"`
	FromNumber   string     `json:"from_number"`
	Body         string     `json:"body" gorm:"type:text;not null"`
	TemplateName string     `json:"template_name" gorm:"index"`
	Status       string     `json:"status" gorm:"not null;default:'QUEUED';index"`
	ProviderSID  string     `json:"provider_sid"`
	Attempts     int        `json:"attempts" gorm:"default:0"`
	LastError    string     `json:"last_error"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (ml *MessageLog) BeforeCreate(tx *gorm.DB) error {
	if ml.ID == uuid.Nil {
		ml.ID = uuid.New()
	}
	return nil
}

func (MessageLog) TableName() string {
	return "message_logs"
}

// SMSNotification is the Kafka payload for an outbound guest SMS. Its ID
// doubles as the MessageLog primary key so workers can settle the row.
type SMSNotification struct {
	ID           uuid.UUID `json:"id"`
	GuestID      uuid.UUID `json:"guest_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	ToNumber     string    `json:"to_number"`
	FromNumber   string    `json:"from_number"`
	Body         string    `json:"body"`
	TemplateName string    `json:"template_name"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	RetryCount int        `json:"retry_count"`
	MaxRetries int        `json:"max_retries"`
	LastError  *string    `json:"last_error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}

func NewSMSNotification(guestID, propertyID uuid.UUID, to, from, body, templateName string) *SMSNotification {
	now := time.Now()
	return &SMSNotification{
		ID:           uuid.New(),
		GuestID:      guestID,
		PropertyID:   propertyID,
		ToNumber:     to,
		FromNumber:   from,
		Body:         body,
		TemplateName: templateName,
		MaxRetries:   3,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// GetPartitionKey keys partitioning by guest so one guest's messages
// stay ordered.
func (sn *SMSNotification) GetPartitionKey() string {
	return sn.GuestID.String()
}

func (sn *SMSNotification) ToJSON() ([]byte, error) {
	return json.Marshal(sn)
}

func (sn *SMSNotification) IsExpired() bool {
	return sn.ExpiresAt != nil && time.Now().After(*sn.ExpiresAt)
}

func (sn *SMSNotification) MarkSent() {
	now := time.Now()
	sn.SentAt = &now
	sn.UpdatedAt = now
}

func (sn *SMSNotification) MarkFailed(err error) {
	sn.UpdatedAt = time.Now()
	errorStr := err.Error()
	sn.LastError = &errorStr
}

// MessageResponse represents a message log entry returned to clients
type MessageResponse struct {
	ID           uuid.UUID  `json:"id"`
	GuestID      uuid.UUID  `json:"guest_id"`
	ToNumber     string     `json:"to_number"`
	Body         string     `json:"body"`
	TemplateName string     `json:"template_name"`
	Status       string     `json:"status"`
	Attempts     int        `json:"attempts"`
	LastError    string     `json:"last_error,omitempty"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (ml *MessageLog) ToResponse() MessageResponse {
	return MessageResponse{
		ID:           ml.ID,
		GuestID:      ml.GuestID,
		ToNumber:     ml.ToNumber,
		Body:         ml.Body,
		TemplateName: ml.TemplateName,
		Status:       ml.Status,
		Attempts:     ml.Attempts,
		LastError:    ml.LastError,
		SentAt:       ml.SentAt,
		CreatedAt:    ml.CreatedAt,
	}
}
