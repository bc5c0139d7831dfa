package properties

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound   = errors.New("property not found")
	ErrPropertyCodeExists = errors.New("property code already exists")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateProperty(staffID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error)
	GetPropertyByID(id uuid.UUID) (*PropertyResponse, error)
	GetPropertyByCode(code string) (*PropertyResponse, error)
	UpdateProperty(id uuid.UUID, staffID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error)
	DeleteProperty(id uuid.UUID) error
	GetAllProperties(query PropertyListQuery) (*PaginatedProperties, error)
	GetSMSFromNumber(propertyID uuid.UUID) (string, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil // Skip caching if cache service is not available
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidatePropertyCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PROPERTY_ALL)
}

func (s *service) CreateProperty(staffID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if existing, err := s.repo.GetByCode(code); err == nil && existing != nil {
		return nil, ErrPropertyCodeExists
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	property := &Property{
		Name:          req.Name,
		Code:          code,
		Address:       req.Address,
		Timezone:      timezone,
		SMSFromNumber: req.SMSFromNumber,
		CheckInHour:   15,
		CheckOutHour:  11,
		CreatedBy:     staffID,
	}

	if req.CheckInHour != nil {
		property.CheckInHour = *req.CheckInHour
	}
	if req.CheckOutHour != nil {
		property.CheckOutHour = *req.CheckOutHour
	}

	if err := s.repo.Create(property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.invalidatePropertyCache(context.Background())

	response := property.ToResponse()
	return &response, nil
}

func (s *service) GetPropertyByID(id uuid.UUID) (*PropertyResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildPropertyDetailKey(id.String())

	var cached PropertyResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	property, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	response := property.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_PROPERTY_DETAIL)

	return &response, nil
}

func (s *service) GetPropertyByCode(code string) (*PropertyResponse, error) {
	property, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	response := property.ToResponse()
	return &response, nil
}

func (s *service) UpdateProperty(id uuid.UUID, staffID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.SMSFromNumber != nil {
		updates["sms_from_number"] = *req.SMSFromNumber
	}
	if req.CheckInHour != nil {
		updates["check_in_hour"] = *req.CheckInHour
	}
	if req.CheckOutHour != nil {
		updates["check_out_hour"] = *req.CheckOutHour
	}

	if len(updates) == 0 {
		return s.GetPropertyByID(id)
	}

	updates["updated_by"] = staffID

	property, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidatePropertyCache(context.Background())

	response := property.ToResponse()
	return &response, nil
}

func (s *service) DeleteProperty(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to get property: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.invalidatePropertyCache(context.Background())
	return nil
}

func (s *service) GetAllProperties(query PropertyListQuery) (*PaginatedProperties, error) {
	props, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]PropertyResponse, len(props))
	for i, p := range props {
		responses[i] = p.ToResponse()
	}

	return &PaginatedProperties{
		Properties: responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

// GetSMSFromNumber returns the sender number outbound guest SMS uses for a property
func (s *service) GetSMSFromNumber(propertyID uuid.UUID) (string, error) {
	property, err := s.GetPropertyByID(propertyID)
	if err != nil {
		return "", err
	}
	return property.SMSFromNumber, nil
}
