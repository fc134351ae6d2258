package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/adapters/media_storage"
	"github.com/panchofdez/portfolio-api/internal/config"
)

// The cleanup worker retries asset deletions that failed on the
// best-effort path. Destroy is idempotent on the media host, so
// re-processing a message is harmless.
func main() {
	fmt.Println("Starting Portfolio Asset Cleanup Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Kafka Consumer
	assetConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicAssetEvents,
		GroupID:  "asset-cleanup-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer assetConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicAssetEvents)

	ctx := context.Background()
	for {
		msg, err := assetConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.AssetEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(assetConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for asset: %s", payload.EventType, payload.PublicID)

		if err := uploader.Delete(ctx, payload.PublicID); err != nil {
			log.Printf("ERROR: Failed to delete asset %s: %v", payload.PublicID, err)
			continue
		}

		commitMessage(assetConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
