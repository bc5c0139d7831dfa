package messaging

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(log *MessageLog) error
	GetByID(id uuid.UUID) (*MessageLog, error)
	ListByGuest(guestID uuid.UUID, limit int) ([]MessageLog, error)
	CountSentByProperty(propertyID uuid.UUID, since time.Time) (int64, error)
	Settle(id uuid.UUID, status MessageStatus, providerSID string, attempts int, lastError string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(log *MessageLog) error {
	return r.db.Create(log).Error
}

func (r *repository) GetByID(id uuid.UUID) (*MessageLog, error) {
	var log MessageLog
	err := r.db.Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *repository) ListByGuest(guestID uuid.UUID, limit int) ([]MessageLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []MessageLog
	err := r.db.Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *repository) CountSentByProperty(propertyID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&MessageLog{}).
		Where("property_id = ? AND status = ? AND sent_at >= ?", propertyID, string(MessageStatusSent), since).
		Count(&count).Error
	return count, err
}

// Settle moves a QUEUED row to its terminal state after a worker has
// finished with it.
func (r *repository) Settle(id uuid.UUID, status MessageStatus, providerSID string, attempts int, lastError string) error {
	updates := map[string]interface{}{
		"status":   string(status),
		"attempts": attempts,
	}
	if providerSID != "" {
		updates["provider_sid"] = providerSID
	}
	if lastError != "" {
		updates["last_error"] = lastError
	}
	if status == MessageStatusSent {
		updates["sent_at"] = time.Now()
	}
	return r.db.Model(&MessageLog{}).Where("id = ?", id).Updates(updates).Error
}
