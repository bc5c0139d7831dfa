package checkinout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestlink/internal/gueststatus"
	"guestlink/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound    = errors.New("check-in-out request not found")
	ErrRequestNotPending  = errors.New("request has already been decided")
	ErrDuplicateRequest   = errors.New("an outstanding request of this type already exists")
	ErrInvalidDecision    = errors.New("decision must be ACCEPTED or DECLINED")
	ErrInvalidRequestType = errors.New("unknown request type")
)

type Service interface {
	CreateRequest(ctx context.Context, propertyID uuid.UUID, payload CreateRequestPayload) (*RequestResponse, error)
	ApplyRequestDecision(ctx context.Context, requestID uuid.UUID, decision gueststatus.RequestState, staffID uuid.UUID) (*DecisionResult, error)
	GetRequestsByGuest(ctx context.Context, guestID uuid.UUID) ([]RequestResponse, error)
	GetOutstandingRequests(ctx context.Context, propertyID uuid.UUID) ([]RequestResponse, error)
}

type service struct {
	repo          Repository
	statusService gueststatus.Service
	db            *gorm.DB
	log           *logger.Logger
}

func NewService(repo Repository, statusService gueststatus.Service, db *gorm.DB) Service {
	return &service{
		repo:          repo,
		statusService: statusService,
		db:            db,
		log:           logger.GetDefault(),
	}
}

func isDuplicateRequestErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "uniq_outstanding_request_per_type") ||
		strings.Contains(msg, "UNIQUE constraint failed: request_records")
}

// ValidateDecision checks that a decision value can close a pending request.
// Pure, usable without a service instance.
func ValidateDecision(request *RequestRecord, decision gueststatus.RequestState) error {
	if decision != gueststatus.RequestAccepted && decision != gueststatus.RequestDeclined {
		return ErrInvalidDecision
	}
	if !request.IsOutstanding() {
		return ErrRequestNotPending
	}
	return nil
}

// CreateRequest records the ask and moves the governed status field to
// REQUESTED in the same transaction.
func (s *service) CreateRequest(ctx context.Context, propertyID uuid.UUID, payload CreateRequestPayload) (*RequestResponse, error) {
	guestID, err := uuid.Parse(payload.GuestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest ID: %w", err)
	}

	requestType := RequestType(payload.Type)
	if !IsValidRequestType(payload.Type) {
		return nil, ErrInvalidRequestType
	}

	if existing, err := s.repo.GetOutstanding(ctx, guestID, requestType); err == nil && existing != nil {
		return nil, ErrDuplicateRequest
	}

	request := &RequestRecord{
		GuestID:       guestID,
		PropertyID:    propertyID,
		Type:          requestType,
		State:         gueststatus.RequestRequested,
		RequestedTime: payload.RequestedTime,
	}

	var old, updated gueststatus.Snapshot
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		old, updated, err = s.statusService.UpdateSubStatus(ctx, tx, guestID,
			requestType.StatusField(), string(gueststatus.RequestRequested))
		return err
	})
	if err != nil {
		// The partial unique index on (guest_id, type) catches creates that
		// raced past the outstanding-request check above.
		if isDuplicateRequestErr(err) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	if updated != old {
		s.statusService.NotifyTransition(ctx, guestID, old, updated)
	}

	resp := request.ToResponse()
	return &resp, nil
}

// ApplyRequestDecision closes a pending request. The request-state write, the
// status-field write and the guest time-field write commit or fail as one
// unit; a rejected transition leaves everything untouched.
//
// Concurrent decisions on the same guest are not serialized beyond the
// transaction itself. Two racing decisions both read REQUESTED, both pass
// validation, and the later commit wins.
func (s *service) ApplyRequestDecision(ctx context.Context, requestID uuid.UUID, decision gueststatus.RequestState, staffID uuid.UUID) (*DecisionResult, error) {
	var request *RequestRecord
	var old, updated gueststatus.Snapshot

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		request, err = s.repo.WithTx(tx).GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", err)
		}

		if err := ValidateDecision(request, decision); err != nil {
			return err
		}

		old, updated, err = s.statusService.UpdateSubStatus(ctx, tx, request.GuestID,
			request.Type.StatusField(), string(decision))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		request.State = decision
		request.DecidedBy = &staffID
		request.DecidedAt = &now
		if err := s.repo.WithTx(tx).Save(ctx, request); err != nil {
			return fmt.Errorf("failed to persist decision: %w", err)
		}

		if decision == gueststatus.RequestAccepted {
			column := guestTimeColumn[request.Type]
			if err := tx.Table("guests").
				Where("id = ?", request.GuestID).
				Update(column, request.RequestedTime).Error; err != nil {
				return fmt.Errorf("failed to update guest %s: %w", column, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogRequestDecision(ctx, requestID.String(), request.GuestID.String(), string(decision))
	s.statusService.NotifyTransition(ctx, request.GuestID, old, updated)

	status, err := s.statusService.GetStatus(ctx, request.GuestID)
	if err != nil {
		return nil, err
	}

	return &DecisionResult{
		Request:     request.ToResponse(),
		GuestStatus: *status,
	}, nil
}

func (s *service) GetRequestsByGuest(ctx context.Context, guestID uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.repo.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *service) GetOutstandingRequests(ctx context.Context, propertyID uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.repo.ListOutstandingByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding requests: %w", err)
	}
	return toResponses(requests), nil
}

func toResponses(requests []RequestRecord) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}
	return responses
}
