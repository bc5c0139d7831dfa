package guests

import (
	"context"
	"strings"

	"guestlink/internal/gueststatus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*Guest, error)
	GetByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*Guest, error)
	GetAll(ctx context.Context, propertyID uuid.UUID, query GuestListQuery) ([]Guest, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Guest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetChatList(ctx context.Context, propertyID uuid.UUID) ([]ChatListEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, guest *Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Guest, error) {
	var guest Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *repository) GetByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*Guest, error) {
	var guest Guest
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND phone = ?", propertyID, phone).
		Order("created_at DESC").
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *repository) GetAll(ctx context.Context, propertyID uuid.UUID, query GuestListQuery) ([]Guest, int64, error) {
	var guestList []Guest
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Guest{}).Where("guests.property_id = ?", propertyID)

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR room_number LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm)
	}

	if query.Stage != "" {
		db = db.Joins("JOIN guest_statuses ON guest_statuses.guest_id = guests.id").
			Where("guest_statuses.current_status = ?", query.Stage)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("guests.created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&guestList).Error

	return guestList, totalCount, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Guest, error) {
	var guest Guest

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&guest).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error; err != nil {
		return nil, err
	}

	return &guest, nil
}

// Delete removes the guest and cascade-removes their status, request and
// message rows in one transaction
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM request_records WHERE guest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM message_logs WHERE guest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("guest_id = ?", id).Delete(&gueststatus.GuestStatus{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Guest{}).Error
	})
}

// GetChatList joins guests with their status for the dashboard sidebar
func (r *repository) GetChatList(ctx context.Context, propertyID uuid.UUID) ([]ChatListEntry, error) {
	var entries []ChatListEntry

	err := r.db.WithContext(ctx).
		Table("guests").
		Select(`guests.id as guest_id,
			guests.first_name, guests.last_name, guests.phone, guests.room_number,
			guest_statuses.current_status, guest_statuses.reservation_status,
			guest_statuses.early_check_in_status, guest_statuses.late_check_out_status,
			guest_statuses.pre_arrival_status, guests.updated_at`).
		Joins("JOIN guest_statuses ON guest_statuses.guest_id = guests.id").
		Where("guests.property_id = ?", propertyID).
		Order("guests.updated_at DESC").
		Scan(&entries).Error

	return entries, err
}
