package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/panchofdez/portfolio-api/internal/config"
)

const (
	TopicPortfolioEvents = "portfolio.events"
	TopicAssetEvents     = "asset.events"
)

type PortfolioEventType string

const (
	PortfolioEventTypeCreated PortfolioEventType = "portfolio.created"
	PortfolioEventTypeUpdated PortfolioEventType = "portfolio.updated"
)

type PortfolioEventPayload struct {
	EventType   PortfolioEventType `json:"event_type"`
	PortfolioID uuid.UUID          `json:"portfolio_id"`
	UserID      uuid.UUID          `json:"user_id"`
}

// AssetEventPayload asks the cleanup worker to retry an asset deletion
// that failed on the best-effort path.
type AssetEventPayload struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	PublicID  string    `json:"public_id"`
}

const AssetEventTypeDeleteRequested = "asset.delete.requested"

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
	AssetEventsWriter     *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	assetWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAssetEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		PortfolioEventsWriter: portfolioWriter,
		AssetEventsWriter:     assetWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal portfolio event: %w", err)
	}
	return c.PortfolioEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishAssetEvent(ctx context.Context, payload AssetEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal asset event: %w", err)
	}
	return c.AssetEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PublicID),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
	if c.AssetEventsWriter != nil {
		c.AssetEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
