package analytics

import (
	"context"
	"fmt"
	"time"

	"guestlink/internal/shared/constants"
	"guestlink/pkg/cache"

	"github.com/google/uuid"
)

// RequestCounter reports outstanding check-in and check-out requests.
type RequestCounter interface {
	CountOutstandingByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

// MessageCounter reports delivered guest messages.
type MessageCounter interface {
	CountSentForProperty(propertyID uuid.UUID, since time.Time) (int64, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetDashboard(ctx context.Context, propertyID uuid.UUID) (*DashboardResponse, error)
}

type service struct {
	repo         Repository
	requests     RequestCounter
	messages     MessageCounter
	cacheService cache.Service
}

func NewService(repo Repository, requests RequestCounter, messages MessageCounter) Service {
	return &service{
		repo:     repo,
		requests: requests,
		messages: messages,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboard(ctx context.Context, propertyID uuid.UUID) (*DashboardResponse, error) {
	cacheKey := constants.BuildAnalyticsDashboardKey(propertyID.String())

	if s.cacheService != nil {
		var cached DashboardResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	byStage, err := s.repo.CountGuestsByStage(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count guests by stage: %w", err)
	}

	var total int64
	for _, count := range byStage {
		total += count
	}

	outstanding, err := s.requests.CountOutstandingByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count outstanding requests: %w", err)
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	endOfDay := startOfDay.Add(24 * time.Hour)

	var messagesSent int64
	if s.messages != nil {
		messagesSent, err = s.messages.CountSentForProperty(propertyID, startOfDay)
		if err != nil {
			return nil, fmt.Errorf("failed to count sent messages: %w", err)
		}
	}

	arrivals, err := s.repo.CountArrivalsBetween(propertyID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count arrivals: %w", err)
	}

	departures, err := s.repo.CountDeparturesBetween(propertyID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count departures: %w", err)
	}

	dashboard := &DashboardResponse{
		PropertyID:          propertyID,
		TotalGuests:         total,
		GuestsByStage:       byStage,
		OutstandingRequests: outstanding,
		MessagesSentToday:   messagesSent,
		ArrivalsToday:       arrivals,
		DeparturesToday:     departures,
		GeneratedAt:         time.Now().UTC(),
	}

	if s.cacheService != nil {
		s.cacheService.Set(ctx, cacheKey, dashboard, constants.TTL_ANALYTICS_DASHBOARD)
	}

	return dashboard, nil
}
