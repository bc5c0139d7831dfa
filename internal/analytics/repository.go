package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CountGuestsByStage(propertyID uuid.UUID) (map[string]int64, error)
	CountArrivalsBetween(propertyID uuid.UUID, from, to time.Time) (int64, error)
	CountDeparturesBetween(propertyID uuid.UUID, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type stageCount struct {
	CurrentStatus string
	Count         int64
}

func (r *repository) CountGuestsByStage(propertyID uuid.UUID) (map[string]int64, error) {
	var rows []stageCount
	err := r.db.Table("guests").
		Select("guest_statuses.current_status AS current_status, COUNT(*) AS count").
		Joins("JOIN guest_statuses ON guest_statuses.guest_id = guests.id").
		Where("guests.property_id = ?", propertyID).
		Group("guest_statuses.current_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CurrentStatus] = row.Count
	}
	return counts, nil
}

func (r *repository) CountArrivalsBetween(propertyID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Table("guests").
		Where("property_id = ? AND check_in_time >= ? AND check_in_time < ?", propertyID, from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDeparturesBetween(propertyID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Table("guests").
		Where("property_id = ? AND check_out_time >= ? AND check_out_time < ?", propertyID, from, to).
		Count(&count).Error
	return count, err
}
