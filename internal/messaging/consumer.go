package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type SMSConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "guestlink-sms-workers",
		Topics:               []string{"guest-sms"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaSMSConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	sender        SMSSender
	repo          Repository
	deadLetter    SMSProducer
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaSMSConsumer(config *ConsumerConfig, sender SMSSender, repo Repository, deadLetter SMSProducer) (SMSConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaSMSConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		sender:        sender,
		repo:          repo,
		deadLetter:    deadLetter,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (ksc *KafkaSMSConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d SMS consumer workers for topics: %v", numWorkers, ksc.topics)

	go ksc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ksc.runWorker(ctx, workerID)
		}(i)
	}

	log.Printf("📥 All %d SMS consumer workers started", numWorkers)
	return nil
}

func (ksc *KafkaSMSConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &smsGroupHandler{
		consumer: ksc,
		workerID: workerID,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			err := ksc.consumerGroup.Consume(ctx, ksc.topics, handler)
			if err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (ksc *KafkaSMSConsumer) handleErrors() {
	for err := range ksc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (ksc *KafkaSMSConsumer) Stop() error {
	log.Println("📥 Stopping SMS consumer...")
	ksc.cancel()

	if err := ksc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 SMS consumer stopped")
	return nil
}

func (ksc *KafkaSMSConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-ksc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if ksc.sender == nil {
			return fmt.Errorf("SMS sender not configured")
		}
		return nil
	}
}

type smsGroupHandler struct {
	consumer *KafkaSMSConsumer
	workerID int
}

func (h *smsGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *smsGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *smsGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("📥 Worker %d: Error processing message: %v", h.workerID, err)
			}
			// Always mark: a message that exhausted its retries has been
			// settled to the dead letter topic and must not be redelivered.
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *smsGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	log.Printf("📥 Worker %d: Processing SMS from topic %s, partition %d, offset %d",
		h.workerID, message.Topic, message.Partition, message.Offset)

	var notification SMSNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal SMS notification: %w", err)
	}

	if notification.IsExpired() {
		log.Printf("📥 Worker %d: SMS %s expired, skipping", h.workerID, notification.ID)
		h.settle(notification.ID.String(), &notification, MessageStatusExpired, "", "message expired before delivery")
		return nil
	}

	sid, attempts, err := h.sendWithRetry(ctx, &notification)
	if err != nil {
		notification.MarkFailed(err)
		notification.RetryCount = attempts
		h.settle(notification.ID.String(), &notification, MessageStatusFailed, sid, err.Error())

		if h.consumer.deadLetter != nil {
			if dlqErr := h.consumer.deadLetter.PublishToDeadLetter(ctx, &notification); dlqErr != nil {
				log.Printf("📥 Worker %d: Failed to publish SMS %s to dead letter topic: %v",
					h.workerID, notification.ID, dlqErr)
			}
		}
		return err
	}

	notification.MarkSent()
	h.settle(notification.ID.String(), &notification, MessageStatusSent, sid, "")
	log.Printf("📨 Worker %d: SMS sent successfully to %s (sid %s)", h.workerID, notification.ToNumber, sid)
	return nil
}

func (h *smsGroupHandler) settle(id string, notification *SMSNotification, status MessageStatus, sid, lastError string) {
	if h.consumer.repo == nil {
		return
	}
	if err := h.consumer.repo.Settle(notification.ID, status, sid, notification.RetryCount+1, lastError); err != nil {
		log.Printf("📥 Worker %d: Failed to settle message log %s: %v", h.workerID, id, err)
	}
}

func (h *smsGroupHandler) sendWithRetry(ctx context.Context, notification *SMSNotification) (string, int, error) {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		sid, err := h.consumer.sender.SendSMS(ctx, notification.FromNumber, notification.ToNumber, notification.Body)
		if err == nil {
			if attempt > 0 {
				log.Printf("📥 Worker %d: Successfully sent SMS after %d retries", h.workerID, attempt)
			}
			return sid, attempt, nil
		}
		lastErr = err

		if attempt == maxRetries {
			log.Printf("📥 Worker %d: Failed to send SMS after %d attempts: %v", h.workerID, maxRetries+1, err)
			break
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)
		log.Printf("📥 Worker %d: Retry %d for SMS delivery after %v", h.workerID, attempt+1, delay)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return "", attempt, ctx.Err()
		}
	}

	return "", maxRetries, lastErr
}
