package checkinout

import (
	"context"

	"guestlink/internal/gueststatus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, request *RequestRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*RequestRecord, error)
	GetOutstanding(ctx context.Context, guestID uuid.UUID, requestType RequestType) (*RequestRecord, error)
	Save(ctx context.Context, request *RequestRecord) error
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]RequestRecord, error)
	ListOutstandingByProperty(ctx context.Context, propertyID uuid.UUID) ([]RequestRecord, error)
	CountOutstandingByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
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

func (r *repository) Create(ctx context.Context, request *RequestRecord) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*RequestRecord, error) {
	var request RequestRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) GetOutstanding(ctx context.Context, guestID uuid.UUID, requestType RequestType) (*RequestRecord, error) {
	var request RequestRecord
	err := r.db.WithContext(ctx).
		Where("guest_id = ? AND type = ? AND state = ?", guestID, requestType, gueststatus.RequestRequested).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) Save(ctx context.Context, request *RequestRecord) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]RequestRecord, error) {
	var requests []RequestRecord
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) ListOutstandingByProperty(ctx context.Context, propertyID uuid.UUID) ([]RequestRecord, error) {
	var requests []RequestRecord
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND state = ?", propertyID, gueststatus.RequestRequested).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) CountOutstandingByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RequestRecord{}).
		Where("property_id = ? AND state = ?", propertyID, gueststatus.RequestRequested).
		Count(&count).Error
	return count, err
}
