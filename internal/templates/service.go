package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateNameExists = errors.New("template name already exists for this scope")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateTemplate(staffID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error)
	GetTemplateByID(id uuid.UUID) (*TemplateResponse, error)
	GetTemplatesForProperty(propertyID uuid.UUID) ([]TemplateResponse, error)
	UpdateTemplate(id uuid.UUID, staffID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error)
	DeleteTemplate(id uuid.UUID) error

	// Render resolves a template by name for a property, falling back to
	// the global default, and fills its placeholders.
	Render(ctx context.Context, propertyID uuid.UUID, name string, data map[string]string) (string, error)
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
		return nil
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateTemplateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TEMPLATES_ALL)
}

func (s *service) CreateTemplate(staffID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		parsed, err := uuid.Parse(req.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("invalid property id: %w", err)
		}
		propertyID = &parsed
	}

	if existing, err := s.repo.GetByName(propertyID, req.Name); err == nil && existing != nil {
		return nil, ErrTemplateNameExists
	}

	template := &MessageTemplate{
		PropertyID: propertyID,
		Name:       req.Name,
		Body:       req.Body,
		Enabled:    true,
		CreatedBy:  staffID,
	}
	if req.Enabled != nil {
		template.Enabled = *req.Enabled
	}

	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.invalidateTemplateCache(context.Background())

	response := template.ToResponse()
	return &response, nil
}

func (s *service) GetTemplateByID(id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	response := template.ToResponse()
	return &response, nil
}

// GetTemplatesForProperty returns the effective template set for a
// property: the global defaults overlaid with property-scoped rows.
func (s *service) GetTemplatesForProperty(propertyID uuid.UUID) ([]TemplateResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildTemplatesByPropertyKey(propertyID.String())

	var cached []TemplateResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	global, err := s.repo.ListGlobal()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	scoped, err := s.repo.ListByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	byName := make(map[string]MessageTemplate, len(global)+len(scoped))
	order := make([]string, 0, len(global)+len(scoped))
	for _, t := range global {
		byName[t.Name] = t
		order = append(order, t.Name)
	}
	for _, t := range scoped {
		if _, exists := byName[t.Name]; !exists {
			order = append(order, t.Name)
		}
		byName[t.Name] = t
	}

	responses := make([]TemplateResponse, 0, len(order))
	for _, name := range order {
		t := byName[name]
		responses = append(responses, t.ToResponse())
	}

	s.setCache(ctx, cacheKey, responses, constants.TTL_TEMPLATES_LIST)
	return responses, nil
}

func (s *service) UpdateTemplate(id uuid.UUID, staffID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	updates := make(map[string]interface{})

	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	if len(updates) == 0 {
		return s.GetTemplateByID(id)
	}

	updates["updated_by"] = staffID

	template, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.invalidateTemplateCache(context.Background())

	response := template.ToResponse()
	return &response, nil
}

func (s *service) DeleteTemplate(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.invalidateTemplateCache(context.Background())
	return nil
}

func (s *service) Render(ctx context.Context, propertyID uuid.UUID, name string, data map[string]string) (string, error) {
	template, err := s.resolve(ctx, propertyID, name)
	if err != nil {
		return "", err
	}
	return RenderBody(template.Body, data), nil
}

// resolve finds the effective template for a property and name. A
// property-scoped row wins; a disabled row falls through to the global
// default rather than silencing the message outright.
func (s *service) resolve(ctx context.Context, propertyID uuid.UUID, name string) (*MessageTemplate, error) {
	cacheKey := constants.BuildTemplateByNameKey(propertyID.String(), name)

	var cached MessageTemplate
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	scoped, err := s.repo.GetByName(&propertyID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve template: %w", err)
	}
	if scoped != nil && scoped.Enabled {
		s.setCache(ctx, cacheKey, scoped, constants.TTL_TEMPLATE_DETAIL)
		return scoped, nil
	}

	global, err := s.repo.GetByName(nil, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to resolve template: %w", err)
	}
	if !global.Enabled {
		return nil, ErrTemplateNotFound
	}

	s.setCache(ctx, cacheKey, global, constants.TTL_TEMPLATE_DETAIL)
	return global, nil
}
