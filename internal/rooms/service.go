package rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guestlink/internal/shared/config"
	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room not available")
	ErrRoomAlreadyHeld  = errors.New("room is held by another agent")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateRoom(ctx context.Context, propertyID uuid.UUID, req CreateRoomRequest) (*RoomResponse, error)
	GetRoomsByProperty(ctx context.Context, propertyID uuid.UUID) ([]RoomResponse, error)
	GetAvailableRooms(ctx context.Context, propertyID uuid.UUID) ([]RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error
	AssignRoom(ctx context.Context, roomID, guestID uuid.UUID, staffID string) (*RoomAssignmentResponse, error)
	ReleaseGuestRoom(ctx context.Context, guestID uuid.UUID) error
}

type service struct {
	repo         Repository
	atomicOps    *AtomicRedisOperations
	cacheService cache.Service
	holdTTL      time.Duration
}

func NewService(repo Repository, atomicOps *AtomicRedisOperations, cfg *config.Config) Service {
	return &service{
		repo:      repo,
		atomicOps: atomicOps,
		holdTTL:   cfg.Redis.RoomHoldTTL,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateRoomCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ROOMS_ALL)
}

func (s *service) CreateRoom(ctx context.Context, propertyID uuid.UUID, req CreateRoomRequest) (*RoomResponse, error) {
	room := &Room{
		PropertyID: propertyID,
		Number:     req.Number,
		Floor:      req.Floor,
		Type:       req.Type,
		Status:     RoomStatusAvailable,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateRoomCache(ctx)

	resp := room.ToResponse(false)
	return &resp, nil
}

func (s *service) GetRoomsByProperty(ctx context.Context, propertyID uuid.UUID) ([]RoomResponse, error) {
	result, err := s.repo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return s.toResponses(ctx, result), nil
}

func (s *service) GetAvailableRooms(ctx context.Context, propertyID uuid.UUID) ([]RoomResponse, error) {
	result, err := s.repo.GetAvailableByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return s.toResponses(ctx, result), nil
}

func (s *service) toResponses(ctx context.Context, roomList []Room) []RoomResponse {
	responses := make([]RoomResponse, len(roomList))
	for i, room := range roomList {
		held := false
		if s.atomicOps != nil {
			held, _ = s.atomicOps.IsRoomHeld(ctx, room.ID.String())
		}
		responses[i] = room.ToResponse(held)
	}
	return responses
}

func (s *service) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	updates := make(map[string]interface{})
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	room, err := s.repo.Update(ctx, roomID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoomCache(ctx)

	resp := room.ToResponse(false)
	return &resp, nil
}

func (s *service) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err := s.repo.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidateRoomCache(ctx)
	return nil
}

// AssignRoom assigns a room to a guest. A short Redis hold guards the room so
// two front-desk agents cannot assign it at the same time. The DB row lock is
// the final arbiter.
func (s *service) AssignRoom(ctx context.Context, roomID, guestID uuid.UUID, staffID string) (*RoomAssignmentResponse, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.IsAvailable() {
		return nil, ErrRoomNotAvailable
	}

	if s.atomicOps != nil {
		if err := s.atomicOps.AtomicHoldRoom(ctx, roomID.String(), staffID, guestID.String(), s.holdTTL); err != nil {
			return nil, ErrRoomAlreadyHeld
		}
		defer s.atomicOps.AtomicReleaseRoom(ctx, roomID.String(), staffID)
	}

	if err := s.repo.AssignGuest(ctx, roomID, guestID); err != nil {
		if errors.Is(err, ErrRoomNotAvailable) {
			return nil, ErrRoomNotAvailable
		}
		return nil, fmt.Errorf("failed to assign room: %w", err)
	}

	s.invalidateRoomCache(ctx)

	return &RoomAssignmentResponse{
		RoomID:     room.ID.String(),
		RoomNumber: room.Number,
		GuestID:    guestID.String(),
		AssignedAt: time.Now().UTC(),
	}, nil
}

// ReleaseGuestRoom frees the guest's room, typically on checkout or cancellation
func (s *service) ReleaseGuestRoom(ctx context.Context, guestID uuid.UUID) error {
	if err := s.repo.ReleaseByGuest(ctx, guestID); err != nil {
		return fmt.Errorf("failed to release room: %w", err)
	}
	s.invalidateRoomCache(ctx)
	return nil
}
