package guests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"guestlink/internal/checkinout"
	"guestlink/internal/gueststatus"
	"guestlink/internal/messaging"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepositoryFixture(t *testing.T) (*gorm.DB, Repository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Guest{}, &gueststatus.GuestStatus{},
		&checkinout.RequestRecord{}, &messaging.MessageLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db, NewRepository(db)
}

func TestDeleteCascadesStatusRequestsAndMessages(t *testing.T) {
	db, repo := newRepositoryFixture(t)

	guest := &Guest{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Phone:      "+15550100",
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("failed to create guest: %v", err)
	}

	status := &gueststatus.GuestStatus{GuestID: guest.ID}
	status.Apply(gueststatus.DefaultSnapshot())
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("failed to create status: %v", err)
	}
	if err := db.Create(&checkinout.RequestRecord{
		GuestID:       guest.ID,
		PropertyID:    guest.PropertyID,
		Type:          checkinout.RequestTypeEarlyCheckIn,
		State:         gueststatus.RequestRequested,
		RequestedTime: time.Now().Add(24 * time.Hour),
	}).Error; err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if err := db.Create(&messaging.MessageLog{
		ID:           uuid.New(),
		GuestID:      guest.ID,
		PropertyID:   guest.PropertyID,
		ToNumber:     guest.Phone,
		Body:         "Welcome!",
		TemplateName: "Reservation Confirmed",
		Status:       string(messaging.MessageStatusQueued),
	}).Error; err != nil {
		t.Fatalf("failed to create message log: %v", err)
	}

	if err := repo.Delete(context.Background(), guest.ID); err != nil {
		t.Fatalf("failed to delete guest: %v", err)
	}

	for table, model := range map[string]interface{}{
		"guest_statuses":  &gueststatus.GuestStatus{},
		"request_records": &checkinout.RequestRecord{},
		"message_logs":    &messaging.MessageLog{},
	} {
		var count int64
		if err := db.Model(model).Where("guest_id = ?", guest.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected no %s rows after delete, found %d", table, count)
		}
	}
}
