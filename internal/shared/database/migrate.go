package database

import (
	"guestlink/internal/checkinout"
	"guestlink/internal/guests"
	"guestlink/internal/gueststatus"
	"guestlink/internal/messaging"
	"guestlink/internal/properties"
	"guestlink/internal/rooms"
	"guestlink/internal/staff"
	"guestlink/internal/templates"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&staff.Staff{},
		&properties.Property{},
		&rooms.Room{},
		&guests.Guest{},
		&gueststatus.GuestStatus{},
		&checkinout.RequestRecord{},
		&templates.MessageTemplate{},
		&messaging.MessageLog{},
	)
}
