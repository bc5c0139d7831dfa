package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A guest carries exactly one status row
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_status_per_guest
		ON guest_statuses (guest_id);
	`).Error
	if err != nil {
		return err
	}

	// At most one outstanding request per guest and type. Backstops the
	// application-level check when two creates race.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_outstanding_request_per_type
		ON request_records (guest_id, type)
		WHERE state = 'REQUESTED';
	`).Error
	if err != nil {
		return err
	}

	// Index for chat list queries scoped to a property
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_guests_property_updated
		ON guests (property_id, updated_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// Index for outstanding request lookups
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_request_records_guest_state
		ON request_records (guest_id, state);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
