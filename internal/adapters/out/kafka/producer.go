// Package kafka publishes parcel lifecycle events to a Kafka topic so
// downstream consumers (notifications, analytics) can react to status
// changes without coupling to the write path.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/IBM/sarama"
)

// StatusChangedEvent is the wire format of a parcel status change.
// One event is emitted per applied transition, keyed by parcel id so a
// single parcel's events stay ordered within a partition.
type StatusChangedEvent struct {
	ParcelID      string    `json:"parcelId"`
	TrackingID    string    `json:"trackingId"`
	Status        string    `json:"status"`
	UpdatedByRole string    `json:"updatedByRole"`
	Note          string    `json:"note,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Version       int       `json:"version"`
}

// StatusChangedProducer publishes status change events via a synchronous
// Kafka producer.
type StatusChangedProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewStatusChangedProducer connects to the given brokers and returns a
// producer bound to the given topic.
func NewStatusChangedProducer(brokers []string, topic string, logger *slog.Logger) (*StatusChangedProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &StatusChangedProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_producer"),
	}, nil
}

// PublishStatusChanged emits one event for the latest history entry of the
// given parcel.
func (p *StatusChangedProducer) PublishStatusChanged(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	history := aggregate.History()
	latest := history[len(history)-1]

	event := StatusChangedEvent{
		ParcelID:      aggregate.ID().String(),
		TrackingID:    aggregate.TrackingID().String(),
		Status:        latest.Status().String(),
		UpdatedByRole: latest.UpdatedBy().Role().String(),
		Note:          latest.Note(),
		OccurredAt:    latest.Timestamp(),
		Version:       aggregate.Version(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status change event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ParcelID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish status change event",
			"parcelId", event.ParcelID, "status", event.Status, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "Published status change event",
		"parcelId", event.ParcelID, "status", event.Status,
		"partition", partition, "offset", offset)
	return nil
}

// Close shuts down the underlying producer.
func (p *StatusChangedProducer) Close() error {
	return p.producer.Close()
}
