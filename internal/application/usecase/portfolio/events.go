package portfolio

import (
	"context"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

// EventPublisher is satisfied by the Kafka producer client.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
	PublishAssetEvent(ctx context.Context, payload event.AssetEventPayload) error
}

// publishPortfolioEvent fires the event without blocking the request;
// completion relative to the response is unspecified.
func publishPortfolioEvent(publisher EventPublisher, log logger.Logger, eventType event.PortfolioEventType, p *portfolio.Portfolio) {
	if publisher == nil {
		return
	}
	go func() {
		payload := event.PortfolioEventPayload{
			EventType:   eventType,
			PortfolioID: p.ID,
			UserID:      p.UserID,
		}
		if err := publisher.PublishPortfolioEvent(context.Background(), payload); err != nil {
			log.Error("Failed to publish portfolio event", err)
		}
	}()
}
