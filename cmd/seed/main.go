package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"guestlink/internal/guests"
	"guestlink/internal/gueststatus"
	"guestlink/internal/properties"
	"guestlink/internal/rooms"
	"guestlink/internal/shared/config"
	"guestlink/internal/shared/database"
	"guestlink/internal/staff"
	"guestlink/internal/templates"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Guestlink Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"message_logs",
		"request_records",
		"guest_statuses",
		"guests",
		"rooms",
		"message_templates",
		"properties",
		"staff",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	adminID, err := s.SeedStaff()
	if err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	propertyID, err := s.SeedProperty(adminID)
	if err != nil {
		return fmt.Errorf("failed to seed property: %w", err)
	}

	if err := s.SeedFrontDeskStaff(propertyID); err != nil {
		return fmt.Errorf("failed to seed front desk staff: %w", err)
	}

	if err := s.SeedRooms(propertyID); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	if err := s.SeedTemplates(adminID); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	if err := s.SeedGuests(propertyID); err != nil {
		return fmt.Errorf("failed to seed guests: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedStaff creates the platform admin
func (s *Seeder) SeedStaff() (uuid.UUID, error) {
	fmt.Println("  👤 Seeding admin staff...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := staff.Staff{
		ID:        uuid.New(),
		FirstName: "Platform",
		LastName:  "Admin",
		Email:     "admin@guestlink.io",
		Password:  string(hashedPassword),
		Role:      staff.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&admin).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("    ✅ Created staff: %s (%s)\n", admin.Email, admin.Role)
	return admin.ID, nil
}

// SeedProperty creates the demo hotel
func (s *Seeder) SeedProperty(adminID uuid.UUID) (uuid.UUID, error) {
	fmt.Println("  🏨 Seeding property...")

	property := properties.Property{
		ID:            uuid.New(),
		Name:          "The Grand Meridian",
		Code:          "GRAND",
		Address:       "1 Harbour View Road, San Francisco, CA",
		Timezone:      "America/Los_Angeles",
		SMSFromNumber: "+14155550100",
		CheckInHour:   15,
		CheckOutHour:  11,
		CreatedBy:     adminID,
	}

	if err := s.db.PostgreSQL.Create(&property).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create property: %w", err)
	}

	fmt.Printf("    ✅ Created property: %s (%s)\n", property.Name, property.Code)
	return property.ID, nil
}

// SeedFrontDeskStaff creates a property-scoped front desk account
func (s *Seeder) SeedFrontDeskStaff(propertyID uuid.UUID) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	frontDesk := staff.Staff{
		ID:         uuid.New(),
		FirstName:  "Dana",
		LastName:   "Reyes",
		Email:      "frontdesk@guestlink.io",
		Password:   string(hashedPassword),
		Role:       staff.RoleFrontDesk,
		PropertyID: &propertyID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&frontDesk).Error; err != nil {
		return fmt.Errorf("failed to create front desk staff: %w", err)
	}

	fmt.Printf("    ✅ Created staff: %s (%s)\n", frontDesk.Email, frontDesk.Role)
	return nil
}

// SeedRooms creates a small room inventory for the demo property
func (s *Seeder) SeedRooms(propertyID uuid.UUID) error {
	fmt.Println("  🚪 Seeding rooms...")

	roomsData := []struct {
		number   string
		floor    string
		roomType string
	}{
		{"101", "1", "STANDARD"},
		{"102", "1", "STANDARD"},
		{"201", "2", "DELUXE"},
		{"204", "2", "DELUXE"},
		{"301", "3", "SUITE"},
	}

	for _, data := range roomsData {
		room := rooms.Room{
			ID:         uuid.New(),
			PropertyID: propertyID,
			Number:     data.number,
			Floor:      data.floor,
			Type:       data.roomType,
			Status:     rooms.RoomStatusAvailable,
		}
		if err := s.db.PostgreSQL.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to create room %s: %w", data.number, err)
		}
	}

	fmt.Printf("    ✅ Created %d rooms\n", len(roomsData))
	return nil
}

// SeedTemplates creates the global default message templates keyed to
// every status transition the engine can produce.
func (s *Seeder) SeedTemplates(adminID uuid.UUID) error {
	fmt.Println("  💬 Seeding message templates...")

	templatesData := []struct {
		name string
		body string
	}{
		{"Reservation Confirmed", "Hi {{firstName}}, your reservation is confirmed. We look forward to welcoming you!"},
		{"Reservation Cancelled", "Hi {{firstName}}, your reservation has been cancelled. We hope to see you another time."},
		{"Checked In", "Welcome, {{firstName}}! You are checked in to room {{roomNumber}}. Reply here if you need anything."},
		{"Checked Out", "Thanks for staying with us, {{firstName}}. You are all checked out. Safe travels!"},
		{"Early Check In Requested", "Hi {{firstName}}, we received your early check-in request and will confirm shortly."},
		{"Early Check In Accepted", "Good news, {{firstName}}! Your early check-in has been approved."},
		{"Early Check In Declined", "Hi {{firstName}}, we are unable to accommodate your early check-in this time. Standard check-in still applies."},
		{"Late Check Out Requested", "Hi {{firstName}}, we received your late check-out request and will confirm shortly."},
		{"Late Check Out Accepted", "Good news, {{firstName}}! Your late check-out has been approved."},
		{"Late Check Out Declined", "Hi {{firstName}}, we are unable to accommodate a late check-out this time. Standard check-out still applies."},
		{"Pre Arrival Completed", "Thanks, {{firstName}}! Your pre-arrival details are all set. See you soon."},
	}

	for _, data := range templatesData {
		template := templates.MessageTemplate{
			ID:        uuid.New(),
			Name:      data.name,
			Body:      data.body,
			Enabled:   true,
			CreatedBy: adminID,
		}
		if err := s.db.PostgreSQL.Create(&template).Error; err != nil {
			return fmt.Errorf("failed to create template %s: %w", data.name, err)
		}
	}

	fmt.Printf("    ✅ Created %d templates\n", len(templatesData))
	return nil
}

// SeedGuests creates demo guests with fresh statuses
func (s *Seeder) SeedGuests(propertyID uuid.UUID) error {
	fmt.Println("  🧳 Seeding guests...")

	guestsData := []struct {
		firstName  string
		lastName   string
		phone      string
		email      string
		roomNumber string
	}{
		{"Grace", "Okafor", "+14155550111", "grace.okafor@example.com", "204"},
		{"Liam", "Nguyen", "+14155550112", "liam.nguyen@example.com", ""},
		{"Sofia", "Marchetti", "+14155550113", "sofia.marchetti@example.com", ""},
	}

	for _, data := range guestsData {
		guest := guests.Guest{
			ID:         uuid.New(),
			PropertyID: propertyID,
			FirstName:  data.firstName,
			LastName:   data.lastName,
			Phone:      data.phone,
			Email:      data.email,
			RoomNumber: data.roomNumber,
		}
		if err := s.db.PostgreSQL.Create(&guest).Error; err != nil {
			return fmt.Errorf("failed to create guest %s: %w", data.phone, err)
		}

		status := gueststatus.GuestStatus{
			ID:      uuid.New(),
			GuestID: guest.ID,
		}
		status.Apply(gueststatus.DefaultSnapshot())
		if err := s.db.PostgreSQL.Create(&status).Error; err != nil {
			return fmt.Errorf("failed to create status for guest %s: %w", data.phone, err)
		}
	}

	fmt.Printf("    ✅ Created %d guests\n", len(guestsData))
	return nil
}
