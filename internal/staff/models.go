package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleFrontDesk Role = "FRONTDESK"
)

// Staff is a hotel staff account that operates the front-desk dashboard.
type Staff struct {
	ID         uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	FirstName  string     `json:"first_name" gorm:"not null"`
	LastName   string     `json:"last_name" gorm:"not null"`
	Password   string     `json:"-" gorm:"not null"` // hide in json
	Role       Role       `json:"role" gorm:"not null;default:'FRONTDESK'"`
	Email      string     `json:"email" gorm:"uniqueIndex;not null"`
	PropertyID *uuid.UUID `json:"property_id,omitempty" gorm:"type:uuid;index"` // nil for platform admins
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleAdmin), string(RoleFrontDesk):
		return true
	default:
		return false
	}
}

func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
