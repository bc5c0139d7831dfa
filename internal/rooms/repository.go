package rooms

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Room, error)
	GetAvailableByProperty(ctx context.Context, propertyID uuid.UUID) ([]Room, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignGuest(ctx context.Context, roomID, guestID uuid.UUID) error
	ReleaseByGuest(ctx context.Context, guestID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Room, error) {
	var result []Room
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("number ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) GetAvailableByProperty(ctx context.Context, propertyID uuid.UUID) ([]Room, error) {
	var result []Room
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, RoomStatusAvailable).
		Order("number ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Room, error) {
	var room Room

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&room).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Room{}).Error
}

// AssignGuest marks the room occupied by the guest inside a row-locked transaction
func (r *repository) AssignGuest(ctx context.Context, roomID, guestID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room Room

		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", roomID).
			First(&room).Error; err != nil {
			return err
		}

		if room.Status != RoomStatusAvailable {
			return ErrRoomNotAvailable
		}

		return tx.Model(&room).Updates(map[string]interface{}{
			"status":   RoomStatusOccupied,
			"guest_id": guestID,
		}).Error
	})
}

// ReleaseByGuest frees any room occupied by the guest
func (r *repository) ReleaseByGuest(ctx context.Context, guestID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Room{}).
		Where("guest_id = ?", guestID).
		Updates(map[string]interface{}{
			"status":   RoomStatusAvailable,
			"guest_id": nil,
		}).Error
}
