package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/scram"

	"donationrelay/internal/notifier"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes donation events to a single topic.
type KafkaNotifier struct {
	writer messageWriter
}

// NewKafkaNotifier connects a writer to brokers. SCRAM-SHA-256 over TLS is
// used when username or password is set.
func NewKafkaNotifier(brokers []string, topic, username, password string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	dialer := kafka.DefaultDialer
	if username != "" || password != "" {
		mechanism, err := scram.Mechanism(scram.SHA256, username, password)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram mechanism: %w", err)
		}
		dialer = &kafka.Dialer{
			SASLMechanism: mechanism,
			TLS:           &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:   brokers,
		Topic:     topic,
		Dialer:    dialer,
		Balancer:  &kafka.Hash{},
		BatchSize: 1,
	})
	return &KafkaNotifier{writer: writer}, nil
}

func (kn *KafkaNotifier) Notify(ctx context.Context, event notifier.DonationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event %s: %w", event.EventID, err)
	}

	return kn.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: data,
	})
}

func (kn *KafkaNotifier) Close() error {
	return kn.writer.Close()
}
