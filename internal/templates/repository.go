package templates

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(template *MessageTemplate) error
	GetByID(id uuid.UUID) (*MessageTemplate, error)
	GetByName(propertyID *uuid.UUID, name string) (*MessageTemplate, error)
	ListByProperty(propertyID uuid.UUID) ([]MessageTemplate, error)
	ListGlobal() ([]MessageTemplate, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*MessageTemplate, error)
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(template *MessageTemplate) error {
	return r.db.Create(template).Error
}

func (r *repository) GetByID(id uuid.UUID) (*MessageTemplate, error) {
	var template MessageTemplate
	err := r.db.Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetByName looks up a template by name within a property scope.
// A nil propertyID targets the global defaults.
func (r *repository) GetByName(propertyID *uuid.UUID, name string) (*MessageTemplate, error) {
	var template MessageTemplate
	query := r.db.Where("name = ?", name)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	} else {
		query = query.Where("property_id IS NULL")
	}
	err := query.First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) ListByProperty(propertyID uuid.UUID) ([]MessageTemplate, error) {
	var list []MessageTemplate
	err := r.db.Where("property_id = ?", propertyID).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repository) ListGlobal() ([]MessageTemplate, error) {
	var list []MessageTemplate
	err := r.db.Where("property_id IS NULL").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*MessageTemplate, error) {
	var template MessageTemplate
	if err := r.db.Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&template).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&MessageTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
