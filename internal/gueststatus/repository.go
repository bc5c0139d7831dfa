package gueststatus

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, status *GuestStatus) error
	GetByGuestID(ctx context.Context, guestID uuid.UUID) (*GuestStatus, error)
	Save(ctx context.Context, status *GuestStatus) error
	DeleteByGuestID(ctx context.Context, guestID uuid.UUID) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, status *GuestStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *repository) GetByGuestID(ctx context.Context, guestID uuid.UUID) (*GuestStatus, error) {
	var status GuestStatus
	err := r.db.WithContext(ctx).Where("guest_id = ?", guestID).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *repository) Save(ctx context.Context, status *GuestStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *repository) DeleteByGuestID(ctx context.Context, guestID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("guest_id = ?", guestID).Delete(&GuestStatus{}).Error
}
