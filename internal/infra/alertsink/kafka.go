package alertsink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	ErrNoBrokers = errors.New("alertsink: kafka brokers not configured")
	ErrPublish   = errors.New("alertsink: failed to publish alert")
)

// KafkaSink публикует уведомления в топик Kafka
// Ключ сообщения - ID записи, чтобы события одной записи попадали в одну партицию
type KafkaSink struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
}

// NewKafkaWriter создает писателя с hash-балансировкой по ключу
func NewKafkaWriter(brokers []string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Balancer: &kafka.Hash{},
	}), nil
}

// NewKafkaSink создает sink поверх готового писателя
func NewKafkaSink(writer MessageWriter, topic string, writeTimeout time.Duration) *KafkaSink {
	return &KafkaSink{
		writer:       writer,
		topic:        topic,
		writeTimeout: writeTimeout,
	}
}

// Send сериализует уведомление и пишет его в Kafka
func (s *KafkaSink) Send(ctx context.Context, alert domain.Alert) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(newAlertEvent(eventID, alert))
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Topic: s.topic,
		Key:   []byte(strconv.FormatInt(alert.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(alert.Kind)},
			{Key: "audience", Value: []byte(alert.Audience)},
		},
	}

	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает писателя
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
