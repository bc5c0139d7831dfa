package messaging

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// SMSProducer publishes outbound SMS messages to Kafka.
type SMSProducer interface {
	PublishSMS(ctx context.Context, notification *SMSNotification) error
	PublishToDeadLetter(ctx context.Context, notification *SMSNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka SMS producer
type KafkaProducerConfig struct {
	Brokers          []string
	SMSTopic         string
	DeadLetterTopic  string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		SMSTopic:         "guest-sms",
		DeadLetterTopic:  "guest-sms-dlq",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaSMSProducer handles publishing SMS messages to Kafka
type KafkaSMSProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaSMSProducer creates a new Kafka SMS producer
func NewKafkaSMSProducer(config *KafkaProducerConfig) (SMSProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one guest's messages on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka SMS producer created successfully")
	return &KafkaSMSProducer{producer: producer, config: config}, nil
}

// PublishSMS publishes a single SMS notification to Kafka
func (ksp *KafkaSMSProducer) PublishSMS(ctx context.Context, notification *SMSNotification) error {
	return ksp.publish(notification, ksp.config.SMSTopic)
}

// PublishToDeadLetter parks a message that exhausted its retries
func (ksp *KafkaSMSProducer) PublishToDeadLetter(ctx context.Context, notification *SMSNotification) error {
	return ksp.publish(notification, ksp.config.DeadLetterTopic)
}

func (ksp *KafkaSMSProducer) publish(notification *SMSNotification, topic string) error {
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal SMS notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   ksp.createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := ksp.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send SMS notification to Kafka: %w", err)
	}

	log.Printf("📤 SMS published to Kafka - Topic: %s, Partition: %d, Offset: %d, Template: %s, To: %s",
		topic, partition, offset, notification.TemplateName, notification.ToNumber)

	return nil
}

// createHeaders creates Kafka headers for SMS notifications
func (ksp *KafkaSMSProducer) createHeaders(notification *SMSNotification) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("guest_id"), Value: []byte(notification.GuestID.String())},
		{Key: []byte("property_id"), Value: []byte(notification.PropertyID.String())},
		{Key: []byte("template_name"), Value: []byte(notification.TemplateName)},
		{Key: []byte("producer"), Value: []byte("guestlink-messaging")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}

	if notification.ExpiresAt != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("expires_at"),
			Value: []byte(notification.ExpiresAt.Format(time.RFC3339)),
		})
	}

	return headers
}

// Close closes the Kafka producer
func (ksp *KafkaSMSProducer) Close() error {
	if ksp.producer != nil {
		if err := ksp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka SMS producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (ksp *KafkaSMSProducer) HealthCheck(ctx context.Context) error {
	if ksp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if ksp.config.SMSTopic == "" {
		return fmt.Errorf("health check failed - SMS topic not configured")
	}
	return nil
}
