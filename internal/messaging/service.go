package messaging

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"guestlink/internal/shared/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

// SenderNumberLookup resolves the outbound number configured for a
// property. The global SMS from number is the fallback.
type SenderNumberLookup interface {
	GetSMSFromNumber(propertyID uuid.UUID) (string, error)
}

type Service interface {
	// DispatchSMS queues an outbound guest SMS through the pipeline.
	DispatchSMS(ctx context.Context, propertyID, guestID uuid.UUID, to, body, templateName string) error

	GetMessagesForGuest(guestID uuid.UUID, limit int) ([]MessageResponse, error)
	CountSentForProperty(propertyID uuid.UUID, since time.Time) (int64, error)

	SetSenderNumberLookup(lookup SenderNumberLookup)

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type service struct {
	cfg      *config.Config
	repo     Repository
	producer SMSProducer
	consumer SMSConsumer
	lookup   SenderNumberLookup

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewService wires the SMS pipeline: a Kafka producer for dispatch, a
// consumer group of delivery workers, and the message log.
func NewService(cfg *config.Config, db *gorm.DB) (Service, error) {
	sender, err := NewTwilioSMSSender(&cfg.SMS)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMS sender: %w", err)
	}

	repo := NewRepository(db)

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.SMSTopic = cfg.Kafka.SMSTopic
	producerConfig.DeadLetterTopic = cfg.Kafka.DeadLetterTopic

	producer, err := NewKafkaSMSProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMS producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.SMSTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaSMSConsumer(consumerConfig, sender, repo, producer)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMS consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📨 SMS messaging service initialized (topic: %s, group: %s)",
		cfg.Kafka.SMSTopic, cfg.Kafka.ConsumerGroupID)

	return &service{
		cfg:      cfg,
		repo:     repo,
		producer: producer,
		consumer: consumer,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

func (s *service) SetSenderNumberLookup(lookup SenderNumberLookup) {
	s.lookup = lookup
}

func (s *service) DispatchSMS(ctx context.Context, propertyID, guestID uuid.UUID, to, body, templateName string) error {
	from := s.resolveFromNumber(propertyID)
	if from == "" {
		return fmt.Errorf("no sender number configured for property %s", propertyID)
	}

	notification := NewSMSNotification(guestID, propertyID, to, from, body, templateName)

	logEntry := &MessageLog{
		ID:           notification.ID,
		GuestID:      guestID,
		PropertyID:   propertyID,
		ToNumber:     to,
		FromNumber:   from,
		Body:         body,
		TemplateName: templateName,
		Status:       string(MessageStatusQueued),
	}
	if err := s.repo.Create(logEntry); err != nil {
		return fmt.Errorf("failed to record outbound message: %w", err)
	}

	if err := s.producer.PublishSMS(ctx, notification); err != nil {
		s.repo.Settle(notification.ID, MessageStatusFailed, "", 0, err.Error())
		return fmt.Errorf("failed to queue SMS: %w", err)
	}

	return nil
}

func (s *service) resolveFromNumber(propertyID uuid.UUID) string {
	if s.lookup != nil {
		if from, err := s.lookup.GetSMSFromNumber(propertyID); err == nil && from != "" {
			return from
		}
	}
	return s.cfg.SMS.FromNumber
}

func (s *service) GetMessagesForGuest(guestID uuid.UUID, limit int) ([]MessageResponse, error) {
	logs, err := s.repo.ListByGuest(guestID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	responses := make([]MessageResponse, len(logs))
	for i, entry := range logs {
		responses[i] = entry.ToResponse()
	}
	return responses, nil
}

func (s *service) CountSentForProperty(propertyID uuid.UUID, since time.Time) (int64, error) {
	return s.repo.CountSentByProperty(propertyID, since)
}

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("messaging service is already running")
	}

	log.Printf("🚀 Starting SMS messaging service...")

	if err := s.consumer.StartConsumers(s.ctx, s.cfg.Kafka.NumWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	log.Printf("✅ SMS messaging service started successfully")
	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return fmt.Errorf("messaging service is not running")
	}

	log.Printf("🛑 Stopping SMS messaging service...")

	s.cancel()

	if err := s.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}
	if err := s.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	s.isRunning = false
	log.Printf("✅ SMS messaging service stopped")
	return nil
}

func (s *service) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	isRunning := s.isRunning
	s.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("messaging service is not running")
	}

	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}
	if err := s.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}
