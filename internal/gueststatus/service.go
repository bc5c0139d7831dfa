package gueststatus

import (
	"context"
	"errors"
	"fmt"

	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"
	"guestlink/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrStatusNotFound = errors.New("guest status not found")

// GuestContact carries what the messaging side effects need about a guest
type GuestContact struct {
	GuestID    uuid.UUID
	PropertyID uuid.UUID
	FirstName  string
	LastName   string
	Phone      string
	RoomNumber string
}

// GuestProvider resolves guest contact data without importing the guests
// package directly, avoiding a circular dependency.
type GuestProvider interface {
	GetContact(ctx context.Context, guestID uuid.UUID) (*GuestContact, error)
}

// TemplateRenderer fetches a template by name for a property and renders it
type TemplateRenderer interface {
	Render(ctx context.Context, propertyID uuid.UUID, name string, data map[string]string) (string, error)
}

// MessageDispatcher hands a rendered message to the outbound SMS pipeline
type MessageDispatcher interface {
	DispatchSMS(ctx context.Context, propertyID, guestID uuid.UUID, to, body, templateName string) error
}

// RealtimeEmitter broadcasts dashboard events to property-scoped subscribers
type RealtimeEmitter interface {
	EmitGuestStatusUpdate(propertyID string, payload interface{})
	EmitChatListUpdate(propertyID string)
}

type Service interface {
	SetGuestProvider(provider GuestProvider)
	SetTemplateRenderer(renderer TemplateRenderer)
	SetDispatcher(dispatcher MessageDispatcher)
	SetEmitter(emitter RealtimeEmitter)
	SetCacheService(cacheService cache.Service)

	InitializeStatus(ctx context.Context, guestID uuid.UUID) (*GuestStatus, error)
	GetStatus(ctx context.Context, guestID uuid.UUID) (*StatusResponse, error)
	UpdateStatus(ctx context.Context, guestID uuid.UUID, req UpdateStatusRequest) (*StatusResponse, error)
	SubmitPreArrival(ctx context.Context, guestID uuid.UUID) (*StatusResponse, error)
	UpdateSubStatus(ctx context.Context, tx *gorm.DB, guestID uuid.UUID, field Field, value string) (old, updated Snapshot, err error)
	NotifyTransition(ctx context.Context, guestID uuid.UUID, old, updated Snapshot)
	DeleteStatus(ctx context.Context, guestID uuid.UUID) error
}

type service struct {
	repo         Repository
	db           *gorm.DB
	guests       GuestProvider
	templates    TemplateRenderer
	dispatcher   MessageDispatcher
	emitter      RealtimeEmitter
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, db *gorm.DB) Service {
	return &service{
		repo: repo,
		db:   db,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetGuestProvider(provider GuestProvider) { s.guests = provider }

func (s *service) SetTemplateRenderer(renderer TemplateRenderer) { s.templates = renderer }

func (s *service) SetDispatcher(dispatcher MessageDispatcher) { s.dispatcher = dispatcher }

func (s *service) SetEmitter(emitter RealtimeEmitter) { s.emitter = emitter }

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// InitializeStatus creates the default status record for a new guest
func (s *service) InitializeStatus(ctx context.Context, guestID uuid.UUID) (*GuestStatus, error) {
	status := &GuestStatus{GuestID: guestID}
	status.Apply(DefaultSnapshot())

	if err := s.repo.Create(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to initialize guest status: %w", err)
	}
	return status, nil
}

func (s *service) GetStatus(ctx context.Context, guestID uuid.UUID) (*StatusResponse, error) {
	status, err := s.repo.GetByGuestID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get guest status: %w", err)
	}

	resp := status.ToResponse()
	return &resp, nil
}

// UpdateStatus is the generic dashboard path. It validates the proposed
// record with no sub-status allowance, persists inside a transaction, and
// then fires the messaging and realtime side effects. A failed dispatch does
// not roll back the committed transition.
func (s *service) UpdateStatus(ctx context.Context, guestID uuid.UUID, req UpdateStatusRequest) (*StatusResponse, error) {
	var status *GuestStatus
	var old Snapshot

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		status, err = s.repo.WithTx(tx).GetByGuestID(ctx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return fmt.Errorf("failed to get guest status: %w", err)
		}

		old = status.Snapshot()
		proposed := req.BuildProposed(old)

		if err := ValidateTransition(old, proposed); err != nil {
			return err
		}

		status.Apply(proposed)
		if err := s.repo.WithTx(tx).Save(ctx, status); err != nil {
			return fmt.Errorf("failed to persist guest status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := status.Snapshot()
	if updated != old {
		s.NotifyTransition(ctx, guestID, old, updated)
	}

	resp := status.ToResponse()
	return &resp, nil
}

// SubmitPreArrival records a completed pre-arrival form. Re-submitting an
// already applied form is a no-op and fires no side effects.
func (s *service) SubmitPreArrival(ctx context.Context, guestID uuid.UUID) (*StatusResponse, error) {
	old, updated, err := s.UpdateSubStatus(ctx, nil, guestID, FieldPreArrival, string(PreArrivalApplied))
	if err != nil {
		return nil, err
	}

	if updated != old {
		s.NotifyTransition(ctx, guestID, old, updated)
	}

	return s.GetStatus(ctx, guestID)
}

// UpdateSubStatus moves exactly one sub-status field on behalf of a dedicated
// flow. It runs inside the caller's transaction so the caller can keep its own
// writes atomic with the status change. Side effects are the caller's job,
// via NotifyTransition after commit.
func (s *service) UpdateSubStatus(ctx context.Context, tx *gorm.DB, guestID uuid.UUID, field Field, value string) (Snapshot, Snapshot, error) {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	status, err := repo.GetByGuestID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, Snapshot{}, ErrStatusNotFound
		}
		return Snapshot{}, Snapshot{}, fmt.Errorf("failed to get guest status: %w", err)
	}

	old := status.Snapshot()
	proposed := old

	switch field {
	case FieldReservation:
		proposed.ReservationStatus = ReservationStatus(value)
	case FieldEarlyCheckIn:
		proposed.EarlyCheckInStatus = RequestState(value)
	case FieldLateCheckOut:
		proposed.LateCheckOutStatus = RequestState(value)
	case FieldPreArrival:
		proposed.PreArrivalStatus = PreArrivalStatus(value)
	default:
		return Snapshot{}, Snapshot{}, fmt.Errorf("%w: field %s is not a sub-status", ErrIllegalTransition, field)
	}

	if err := ValidateTransition(old, proposed, field); err != nil {
		return Snapshot{}, Snapshot{}, err
	}

	status.Apply(proposed)
	if err := repo.Save(ctx, status); err != nil {
		return Snapshot{}, Snapshot{}, fmt.Errorf("failed to persist guest status: %w", err)
	}

	return old, proposed, nil
}

// NotifyTransition resolves the template for a committed transition and fires
// the SMS and realtime side effects. Dispatch failures are logged and
// swallowed; the transition stays committed.
func (s *service) NotifyTransition(ctx context.Context, guestID uuid.UUID, old, updated Snapshot) {
	templateName := ResolveTemplate(old, updated)

	contact, err := s.lookupContact(ctx, guestID)
	if err != nil {
		s.log.LogMessageFailed(ctx, guestID.String(), templateName, err)
		return
	}

	s.log.LogStatusTransition(ctx, guestID.String(), string(old.CurrentStatus), string(updated.CurrentStatus))

	if s.templates != nil && s.dispatcher != nil && contact.Phone != "" {
		body, err := s.templates.Render(ctx, contact.PropertyID, templateName, map[string]string{
			"firstName":  contact.FirstName,
			"lastName":   contact.LastName,
			"roomNumber": contact.RoomNumber,
		})
		if err != nil {
			s.log.LogMessageFailed(ctx, guestID.String(), templateName, err)
		} else if err := s.dispatcher.DispatchSMS(ctx, contact.PropertyID, guestID, contact.Phone, body, templateName); err != nil {
			s.log.LogMessageFailed(ctx, guestID.String(), templateName, err)
		} else {
			s.log.LogMessageDispatched(ctx, guestID.String(), templateName)
		}
	}

	if s.emitter != nil {
		s.emitter.EmitGuestStatusUpdate(contact.PropertyID.String(), map[string]interface{}{
			"guest_id":              guestID.String(),
			"current_status":        string(updated.CurrentStatus),
			"reservation_status":    string(updated.ReservationStatus),
			"early_check_in_status": string(updated.EarlyCheckInStatus),
			"late_check_out_status": string(updated.LateCheckOutStatus),
			"pre_arrival_status":    string(updated.PreArrivalStatus),
		})
		s.emitter.EmitChatListUpdate(contact.PropertyID.String())
	}

	if s.cacheService != nil {
		s.cacheService.Delete(ctx, constants.BuildChatListKey(contact.PropertyID.String()))
	}
}

func (s *service) lookupContact(ctx context.Context, guestID uuid.UUID) (*GuestContact, error) {
	if s.guests == nil {
		return nil, fmt.Errorf("guest provider not configured")
	}
	return s.guests.GetContact(ctx, guestID)
}

func (s *service) DeleteStatus(ctx context.Context, guestID uuid.UUID) error {
	return s.repo.DeleteByGuestID(ctx, guestID)
}
