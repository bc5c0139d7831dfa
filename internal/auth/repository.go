package auth

import (
	"context"
	"errors"

	"guestlink/internal/staff"

	"gorm.io/gorm"
)

type Repository interface {
	CreateStaff(ctx context.Context, account *staff.Staff) error
	GetStaffByEmail(ctx context.Context, email string) (*staff.Staff, error)
	GetStaffByID(ctx context.Context, id string) (*staff.Staff, error)
	UpdateStaffPassword(ctx context.Context, staffID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateStaff(ctx context.Context, account *staff.Staff) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) GetStaffByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	var account staff.Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) GetStaffByID(ctx context.Context, id string) (*staff.Staff, error) {
	var account staff.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) UpdateStaffPassword(ctx context.Context, staffID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&staff.Staff{}).
		Where("id = ?", staffID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&staff.Staff{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
