package guests

import (
	"context"
	"errors"
	"fmt"
	"math"

	"guestlink/internal/gueststatus"
	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"
	"guestlink/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGuestNotFound = errors.New("guest not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateGuest(ctx context.Context, propertyID uuid.UUID, req CreateGuestRequest) (*GuestResponse, error)
	GetGuestByID(ctx context.Context, id uuid.UUID) (*GuestResponse, error)
	GetAllGuests(ctx context.Context, propertyID uuid.UUID, query GuestListQuery) (*PaginatedGuests, error)
	UpdateGuest(ctx context.Context, id uuid.UUID, req UpdateGuestRequest) (*GuestResponse, error)
	DeleteGuest(ctx context.Context, id uuid.UUID) error
	GetChatList(ctx context.Context, propertyID uuid.UUID) ([]ChatListEntry, error)

	// GetContact implements gueststatus.GuestProvider
	GetContact(ctx context.Context, guestID uuid.UUID) (*gueststatus.GuestContact, error)
}

type service struct {
	repo          Repository
	statusService gueststatus.Service
	cacheService  cache.Service
	log           *logger.Logger
}

func NewService(repo Repository, statusService gueststatus.Service) Service {
	return &service{
		repo:          repo,
		statusService: statusService,
		log:           logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateGuestCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_GUESTS_ALL)
}

// CreateGuest creates the guest together with their default status record
func (s *service) CreateGuest(ctx context.Context, propertyID uuid.UUID, req CreateGuestRequest) (*GuestResponse, error) {
	guest := &Guest{
		PropertyID:   propertyID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		RoomNumber:   req.RoomNumber,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
	}

	if err := s.repo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	if _, err := s.statusService.InitializeStatus(ctx, guest.ID); err != nil {
		return nil, err
	}

	s.log.LogGuestCreated(ctx, guest.ID.String(), propertyID.String())
	s.invalidateGuestCache(ctx)

	resp := guest.ToResponse()
	return &resp, nil
}

func (s *service) GetGuestByID(ctx context.Context, id uuid.UUID) (*GuestResponse, error) {
	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	resp := guest.ToResponse()
	return &resp, nil
}

func (s *service) GetAllGuests(ctx context.Context, propertyID uuid.UUID, query GuestListQuery) (*PaginatedGuests, error) {
	guestList, totalCount, err := s.repo.GetAll(ctx, propertyID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]GuestResponse, len(guestList))
	for i, g := range guestList {
		responses[i] = g.ToResponse()
	}

	return &PaginatedGuests{
		Guests:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) UpdateGuest(ctx context.Context, id uuid.UUID, req UpdateGuestRequest) (*GuestResponse, error) {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.RoomNumber != nil {
		updates["room_number"] = *req.RoomNumber
	}
	if req.CheckInTime != nil {
		updates["check_in_time"] = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		updates["check_out_time"] = *req.CheckOutTime
	}

	guest, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}

	s.invalidateGuestCache(ctx)

	resp := guest.ToResponse()
	return &resp, nil
}

func (s *service) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to get guest: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}

	s.invalidateGuestCache(ctx)
	return nil
}

func (s *service) GetChatList(ctx context.Context, propertyID uuid.UUID) ([]ChatListEntry, error) {
	cacheKey := constants.BuildChatListKey(propertyID.String())

	if s.cacheService != nil {
		var cached []ChatListEntry
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.GetChatList(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat list: %w", err)
	}

	if s.cacheService != nil {
		s.cacheService.Set(ctx, cacheKey, entries, constants.TTL_CHAT_LIST)
	}

	return entries, nil
}

// GetContact implements gueststatus.GuestProvider for the status engine's
// messaging side effects.
func (s *service) GetContact(ctx context.Context, guestID uuid.UUID) (*gueststatus.GuestContact, error) {
	guest, err := s.repo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	return &gueststatus.GuestContact{
		GuestID:    guest.ID,
		PropertyID: guest.PropertyID,
		FirstName:  guest.FirstName,
		LastName:   guest.LastName,
		Phone:      guest.Phone,
		RoomNumber: guest.RoomNumber,
	}, nil
}
