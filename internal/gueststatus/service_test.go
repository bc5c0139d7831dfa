package gueststatus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testDispatcher struct {
	mu        sync.Mutex
	fail      bool
	templates []string
}

func (d *testDispatcher) DispatchSMS(ctx context.Context, propertyID, guestID uuid.UUID, to, body, templateName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.templates = append(d.templates, templateName)
	if d.fail {
		return errors.New("provider unavailable")
	}
	return nil
}

type testProvider struct {
	propertyID uuid.UUID
}

func (p *testProvider) GetContact(ctx context.Context, guestID uuid.UUID) (*GuestContact, error) {
	return &GuestContact{
		GuestID:    guestID,
		PropertyID: p.propertyID,
		FirstName:  "Grace",
		Phone:      "+15550101",
	}, nil
}

type testRenderer struct{}

func (testRenderer) Render(ctx context.Context, propertyID uuid.UUID, name string, data map[string]string) (string, error) {
	return name, nil
}

type testEmitter struct {
	mu     sync.Mutex
	events []string
}

func (e *testEmitter) EmitGuestStatusUpdate(propertyID string, payload interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, "guestStatusUpdate")
}

func (e *testEmitter) EmitChatListUpdate(propertyID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, "chatList:update")
}

func newServiceFixture(t *testing.T) (Service, *testDispatcher, *testEmitter, uuid.UUID) {
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

	if err := db.AutoMigrate(&GuestStatus{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	dispatcher := &testDispatcher{}
	emitter := &testEmitter{}

	svc := NewService(NewRepository(db), db)
	svc.SetGuestProvider(&testProvider{propertyID: uuid.New()})
	svc.SetTemplateRenderer(testRenderer{})
	svc.SetDispatcher(dispatcher)
	svc.SetEmitter(emitter)

	guestID := uuid.New()
	if _, err := svc.InitializeStatus(context.Background(), guestID); err != nil {
		t.Fatalf("failed to initialize status: %v", err)
	}

	return svc, dispatcher, emitter, guestID
}

func strPtr(s string) *string { return &s }

func TestInitializeStatusDefaults(t *testing.T) {
	svc, _, _, guestID := newServiceFixture(t)

	status, err := svc.GetStatus(context.Background(), guestID)
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if status.CurrentStatus != string(StageReservation) {
		t.Errorf("expected RESERVATION, got %s", status.CurrentStatus)
	}
	if status.ReservationStatus != string(ReservationConfirmed) {
		t.Errorf("expected CONFIRMED, got %s", status.ReservationStatus)
	}
}

func TestUpdateStatusCheckInDispatchesAndEmits(t *testing.T) {
	svc, dispatcher, emitter, guestID := newServiceFixture(t)

	status, err := svc.UpdateStatus(context.Background(), guestID, UpdateStatusRequest{
		CurrentStatus: strPtr(string(StageInHouse)),
	})
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if status.CurrentStatus != string(StageInHouse) {
		t.Errorf("expected IN_HOUSE, got %s", status.CurrentStatus)
	}

	if len(dispatcher.templates) != 1 || dispatcher.templates[0] != "Checked In" {
		t.Errorf("expected Checked In dispatch, got %v", dispatcher.templates)
	}
	if len(emitter.events) != 2 {
		t.Errorf("expected guestStatusUpdate and chatList:update events, got %v", emitter.events)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, dispatcher, _, guestID := newServiceFixture(t)

	// Cancel, then try to un-cancel
	if _, err := svc.UpdateStatus(context.Background(), guestID, UpdateStatusRequest{
		ReservationStatus: strPtr(string(ReservationCancelled)),
	}); err != nil {
		t.Fatalf("cancelling failed: %v", err)
	}

	_, err := svc.UpdateStatus(context.Background(), guestID, UpdateStatusRequest{
		ReservationStatus: strPtr(string(ReservationConfirmed)),
	})
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}

	// Nothing was persisted and no second message went out
	status, err := svc.GetStatus(context.Background(), guestID)
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if status.ReservationStatus != string(ReservationCancelled) {
		t.Errorf("rejected update must not persist, got %s", status.ReservationStatus)
	}
	if len(dispatcher.templates) != 1 {
		t.Errorf("expected a single dispatch, got %v", dispatcher.templates)
	}
}

func TestDispatchFailureDoesNotRollBackTransition(t *testing.T) {
	svc, dispatcher, _, guestID := newServiceFixture(t)
	dispatcher.fail = true

	status, err := svc.UpdateStatus(context.Background(), guestID, UpdateStatusRequest{
		CurrentStatus: strPtr(string(StageInHouse)),
	})
	if err != nil {
		t.Fatalf("update must succeed even when dispatch fails: %v", err)
	}
	if status.CurrentStatus != string(StageInHouse) {
		t.Errorf("expected IN_HOUSE, got %s", status.CurrentStatus)
	}

	// The committed transition survives the failed dispatch
	reloaded, err := svc.GetStatus(context.Background(), guestID)
	if err != nil {
		t.Fatalf("failed to reload status: %v", err)
	}
	if reloaded.CurrentStatus != string(StageInHouse) {
		t.Errorf("transition rolled back after dispatch failure, got %s", reloaded.CurrentStatus)
	}
}

func TestSubmitPreArrivalDispatchesOnce(t *testing.T) {
	svc, dispatcher, _, guestID := newServiceFixture(t)

	status, err := svc.SubmitPreArrival(context.Background(), guestID)
	if err != nil {
		t.Fatalf("failed to submit pre-arrival: %v", err)
	}
	if status.PreArrivalStatus != string(PreArrivalApplied) {
		t.Errorf("expected APPLIED, got %s", status.PreArrivalStatus)
	}
	if len(dispatcher.templates) != 1 || dispatcher.templates[0] != "Pre Arrival Completed" {
		t.Errorf("expected Pre Arrival Completed dispatch, got %v", dispatcher.templates)
	}

	// Re-submitting is a no-op and sends nothing
	if _, err := svc.SubmitPreArrival(context.Background(), guestID); err != nil {
		t.Fatalf("re-submit must succeed: %v", err)
	}
	if len(dispatcher.templates) != 1 {
		t.Errorf("re-submit must not dispatch again, got %v", dispatcher.templates)
	}
}

func TestUpdateStatusUnknownGuest(t *testing.T) {
	svc, _, _, _ := newServiceFixture(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), UpdateStatusRequest{
		CurrentStatus: strPtr(string(StageInHouse)),
	})
	if !errors.Is(err, ErrStatusNotFound) {
		t.Errorf("expected ErrStatusNotFound, got %v", err)
	}
}
