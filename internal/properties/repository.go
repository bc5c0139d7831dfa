package properties

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(property *Property) error
	GetByID(id uuid.UUID) (*Property, error)
	GetByCode(code string) (*Property, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Property, error)
	Delete(id uuid.UUID) error
	GetAll(query PropertyListQuery) ([]Property, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(property *Property) error {
	return r.db.Create(property).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Property, error) {
	var property Property
	err := r.db.Where("id = ?", id).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *repository) GetByCode(code string) (*Property, error) {
	var property Property
	err := r.db.Where("code = ?", strings.ToUpper(code)).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Property, error) {
	var property Property

	if err := r.db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&property).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Property{}).Error
}

func (r *repository) GetAll(query PropertyListQuery) ([]Property, int64, error) {
	var props []Property
	var totalCount int64

	db := r.db.Model(&Property{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(address) LIKE ?",
			searchTerm, searchTerm, searchTerm)
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

	err := db.Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&props).Error

	return props, totalCount, err
}
