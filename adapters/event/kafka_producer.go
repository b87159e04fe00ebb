package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/config"
	"github.com/segmentio/kafka-go"
)

const (
	TopicContractEvents = "contract.events"
	TopicRatingEvents   = "rating.events"
)

const (
	ContractEventCreated  = "contract.created"
	ContractEventAccepted = "contract.accepted"
	ContractEventRejected = "contract.rejected"
	ContractEventDeleted  = "contract.deleted"

	RatingEventCreated = "rating.created"
	RatingEventUpdated = "rating.updated"
	RatingEventDeleted = "rating.deleted"
)

// ContractEventPayload fans a contract state change out to both parties'
// activity feeds.
type ContractEventPayload struct {
	EventType  string    `json:"event_type"`
	ContractID string    `json:"contract_id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	HirerID    string    `json:"hirer_id"`
	WorkerID   string    `json:"worker_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RatingEventPayload struct {
	EventType  string    `json:"event_type"`
	RatingID   string    `json:"rating_id"`
	ContractID string    `json:"contract_id"`
	RaterID    string    `json:"rater_id"`
	RateeID    string    `json:"ratee_id"`
	Score      int       `json:"score"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ContractEventsWriter *kafka.Writer
	RatingEventsWriter   *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	contractWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicContractEvents,
		Balancer: &kafka.LeastBytes{},
	}

	ratingWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicRatingEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ContractEventsWriter: contractWriter,
		RatingEventsWriter:   ratingWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishContractEvent(ctx context.Context, payload ContractEventPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode contract event: %w", err)
	}
	return c.ContractEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.ContractID),
		Value: raw,
	})
}

func (c *KafkaProducerClient) PublishRatingEvent(ctx context.Context, payload RatingEventPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode rating event: %w", err)
	}
	return c.RatingEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.ContractID),
		Value: raw,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ContractEventsWriter != nil {
		c.ContractEventsWriter.Close()
	}
	if c.RatingEventsWriter != nil {
		c.RatingEventsWriter.Close()
	}
}
