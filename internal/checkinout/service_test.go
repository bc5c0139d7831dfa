package checkinout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"guestlink/internal/guests"
	"guestlink/internal/gueststatus"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingDispatcher captures the templates the status engine dispatches
type recordingDispatcher struct {
	mu        sync.Mutex
	templates []string
}

func (d *recordingDispatcher) DispatchSMS(ctx context.Context, propertyID, guestID uuid.UUID, to, body, templateName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.templates = append(d.templates, templateName)
	return nil
}

func (d *recordingDispatcher) dispatched() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.templates...)
}

type stubProvider struct {
	contact gueststatus.GuestContact
}

func (p *stubProvider) GetContact(ctx context.Context, guestID uuid.UUID) (*gueststatus.GuestContact, error) {
	c := p.contact
	c.GuestID = guestID
	return &c, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, propertyID uuid.UUID, name string, data map[string]string) (string, error) {
	return "rendered: " + name, nil
}

type nopEmitter struct{}

func (nopEmitter) EmitGuestStatusUpdate(propertyID string, payload interface{}) {}
func (nopEmitter) EmitChatListUpdate(propertyID string)                        {}

type fixture struct {
	db            *gorm.DB
	service       Service
	statusService gueststatus.Service
	dispatcher    *recordingDispatcher
	guest         *guests.Guest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the shared in-memory database stable and
	// serializes transactions the way the production store does.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&guests.Guest{}, &gueststatus.GuestStatus{}, &RequestRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	propertyID := uuid.New()
	guest := &guests.Guest{
		ID:         uuid.New(),
		PropertyID: propertyID,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Phone:      "+15550100",
		RoomNumber: "204",
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("failed to create guest: %v", err)
	}

	dispatcher := &recordingDispatcher{}
	statusService := gueststatus.NewService(gueststatus.NewRepository(db), db)
	statusService.SetGuestProvider(&stubProvider{contact: gueststatus.GuestContact{
		PropertyID: propertyID,
		FirstName:  guest.FirstName,
		Phone:      guest.Phone,
	}})
	statusService.SetTemplateRenderer(stubRenderer{})
	statusService.SetDispatcher(dispatcher)
	statusService.SetEmitter(nopEmitter{})

	if _, err := statusService.InitializeStatus(context.Background(), guest.ID); err != nil {
		t.Fatalf("failed to initialize status: %v", err)
	}

	return &fixture{
		db:            db,
		service:       NewService(NewRepository(db), statusService, db),
		statusService: statusService,
		dispatcher:    dispatcher,
		guest:         guest,
	}
}

func (f *fixture) createRequest(t *testing.T, requestType RequestType, requestedTime time.Time) *RequestRecord {
	t.Helper()

	resp, err := f.service.CreateRequest(context.Background(), f.guest.PropertyID, CreateRequestPayload{
		GuestID:       f.guest.ID.String(),
		Type:          string(requestType),
		RequestedTime: requestedTime,
	})
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	id, err := uuid.Parse(resp.ID)
	if err != nil {
		t.Fatalf("bad request ID: %v", err)
	}
	request := &RequestRecord{}
	if err := f.db.Where("id = ?", id).First(request).Error; err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	return request
}

func TestCreateRequestMovesStatusToRequested(t *testing.T) {
	f := newFixture(t)

	f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(24*time.Hour))

	status, err := f.statusService.GetStatus(context.Background(), f.guest.ID)
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if status.EarlyCheckInStatus != string(gueststatus.RequestRequested) {
		t.Errorf("expected REQUESTED, got %s", status.EarlyCheckInStatus)
	}

	templates := f.dispatcher.dispatched()
	if len(templates) != 1 || templates[0] != "Early Check In Requested" {
		t.Errorf("expected Early Check In Requested dispatch, got %v", templates)
	}
}

func TestCreateRequestRejectsDuplicateOutstanding(t *testing.T) {
	f := newFixture(t)

	f.createRequest(t, RequestTypeLateCheckOut, time.Now().Add(48*time.Hour))

	_, err := f.service.CreateRequest(context.Background(), f.guest.PropertyID, CreateRequestPayload{
		GuestID:       f.guest.ID.String(),
		Type:          string(RequestTypeLateCheckOut),
		RequestedTime: time.Now().Add(50 * time.Hour),
	})
	if err != ErrDuplicateRequest {
		t.Errorf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestOutstandingRequestUniqueIndexBacksUpPrecheck(t *testing.T) {
	f := newFixture(t)

	f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(24*time.Hour))

	// Insert directly, bypassing the service-level outstanding check, the way
	// a create racing past it would.
	dup := &RequestRecord{
		GuestID:       f.guest.ID,
		PropertyID:    f.guest.PropertyID,
		Type:          RequestTypeEarlyCheckIn,
		State:         gueststatus.RequestRequested,
		RequestedTime: time.Now().Add(26 * time.Hour),
	}
	err := f.db.Create(dup).Error
	if err == nil {
		t.Fatal("expected the unique index to reject a second outstanding request")
	}
	if !isDuplicateRequestErr(err) {
		t.Errorf("duplicate insert not recognized as such: %v", err)
	}
}

func TestDecidedRequestDoesNotBlockNewOne(t *testing.T) {
	f := newFixture(t)

	request := f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(12*time.Hour))
	if _, err := f.service.ApplyRequestDecision(context.Background(), request.ID,
		gueststatus.RequestDeclined, uuid.New()); err != nil {
		t.Fatalf("failed to apply decision: %v", err)
	}

	// The index only covers REQUESTED rows, so a decided request leaves room
	// for the guest to ask again.
	f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(14*time.Hour))
}

func TestAcceptedDecisionUpdatesGuestTimeAndStatus(t *testing.T) {
	f := newFixture(t)

	requestedTime := time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	request := f.createRequest(t, RequestTypeEarlyCheckIn, requestedTime)

	result, err := f.service.ApplyRequestDecision(context.Background(), request.ID,
		gueststatus.RequestAccepted, uuid.New())
	if err != nil {
		t.Fatalf("failed to apply decision: %v", err)
	}

	if result.Request.State != string(gueststatus.RequestAccepted) {
		t.Errorf("expected ACCEPTED request, got %s", result.Request.State)
	}
	if result.GuestStatus.EarlyCheckInStatus != string(gueststatus.RequestAccepted) {
		t.Errorf("expected ACCEPTED status, got %s", result.GuestStatus.EarlyCheckInStatus)
	}

	var guest guests.Guest
	if err := f.db.Where("id = ?", f.guest.ID).First(&guest).Error; err != nil {
		t.Fatalf("failed to reload guest: %v", err)
	}
	if guest.CheckInTime == nil || !guest.CheckInTime.Equal(requestedTime) {
		t.Errorf("expected check-in time %v, got %v", requestedTime, guest.CheckInTime)
	}

	templates := f.dispatcher.dispatched()
	if len(templates) != 2 || templates[1] != "Early Check In Accepted" {
		t.Errorf("expected Early Check In Accepted dispatch, got %v", templates)
	}
}

func TestDeclinedDecisionLeavesGuestTimeAlone(t *testing.T) {
	f := newFixture(t)

	request := f.createRequest(t, RequestTypeLateCheckOut, time.Now().Add(30*time.Hour))

	result, err := f.service.ApplyRequestDecision(context.Background(), request.ID,
		gueststatus.RequestDeclined, uuid.New())
	if err != nil {
		t.Fatalf("failed to apply decision: %v", err)
	}
	if result.GuestStatus.LateCheckOutStatus != string(gueststatus.RequestDeclined) {
		t.Errorf("expected DECLINED status, got %s", result.GuestStatus.LateCheckOutStatus)
	}

	var guest guests.Guest
	if err := f.db.Where("id = ?", f.guest.ID).First(&guest).Error; err != nil {
		t.Fatalf("failed to reload guest: %v", err)
	}
	if guest.CheckOutTime != nil {
		t.Errorf("declined decision must not set check-out time, got %v", guest.CheckOutTime)
	}
}

func TestDecisionOnDecidedRequestFails(t *testing.T) {
	f := newFixture(t)

	request := f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(12*time.Hour))

	if _, err := f.service.ApplyRequestDecision(context.Background(), request.ID,
		gueststatus.RequestAccepted, uuid.New()); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	_, err := f.service.ApplyRequestDecision(context.Background(), request.ID,
		gueststatus.RequestDeclined, uuid.New())
	if err != ErrRequestNotPending {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}

// TestConcurrentDecisionsRace documents the concurrency model: two racing
// decisions on the same guest are not serialized beyond the transaction
// itself. The final persisted state matches whichever decision committed,
// there is no optimistic-concurrency token to reject the loser earlier.
func TestConcurrentDecisionsRace(t *testing.T) {
	f := newFixture(t)

	request := f.createRequest(t, RequestTypeEarlyCheckIn, time.Now().Add(12*time.Hour))

	decisions := []gueststatus.RequestState{gueststatus.RequestAccepted, gueststatus.RequestDeclined}
	outcomes := make([]error, len(decisions))

	var wg sync.WaitGroup
	for i, decision := range decisions {
		wg.Add(1)
		go func(i int, decision gueststatus.RequestState) {
			defer wg.Done()
			_, outcomes[i] = f.service.ApplyRequestDecision(context.Background(), request.ID, decision, uuid.New())
		}(i, decision)
	}
	wg.Wait()

	var succeeded []gueststatus.RequestState
	for i, err := range outcomes {
		if err == nil {
			succeeded = append(succeeded, decisions[i])
		} else if err != ErrRequestNotPending {
			t.Fatalf("unexpected failure for %s: %v", decisions[i], err)
		}
	}
	if len(succeeded) == 0 {
		t.Fatal("expected at least one decision to commit")
	}

	var final RequestRecord
	if err := f.db.Where("id = ?", request.ID).First(&final).Error; err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if final.IsOutstanding() {
		t.Fatal("request must end in a terminal state")
	}

	matched := false
	for _, decision := range succeeded {
		if final.State == decision {
			matched = true
		}
	}
	if !matched {
		t.Errorf("final state %s does not match any committed decision %v", final.State, succeeded)
	}
}
