package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/persistence"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/notifications"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/config"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
)

func main() {
	fmt.Println("Starting RedOficios Gateway Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	activityStore := persistence.NewRedisActivityStore(redisClient)

	// Worker Use Cases
	processContractEventUC := notifications.NewProcessContractEventUseCase(activityStore, appLogger)
	processRatingEventUC := notifications.NewProcessRatingEventUseCase(activityStore, appLogger)

	// Kafka Consumers
	contractConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicContractEvents,
		GroupID:  "activity-feed-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer contractConsumer.Close()

	ratingConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicRatingEvents,
		GroupID:  "activity-feed-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer ratingConsumer.Close()

	ctx := context.Background()

	go consumeContractEvents(ctx, contractConsumer, processContractEventUC)
	consumeRatingEvents(ctx, ratingConsumer, processRatingEventUC)
}

func consumeContractEvents(ctx context.Context, consumer *kafka.Reader, uc *notifications.ProcessContractEventUseCase) {
	log.Printf("Worker listening on topic '%s'...", event.TopicContractEvents)
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ContractEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for ContractID: %s", payload.EventType, payload.ContractID)

		if err := uc.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to process event for ContractID %s: %v", payload.ContractID, err)
			continue
		}

		commitMessage(consumer, msg)
	}
}

func consumeRatingEvents(ctx context.Context, consumer *kafka.Reader, uc *notifications.ProcessRatingEventUseCase) {
	log.Printf("Worker listening on topic '%s'...", event.TopicRatingEvents)
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.RatingEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for RatingID: %s", payload.EventType, payload.RatingID)

		if err := uc.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to process event for RatingID %s: %v", payload.RatingID, err)
			continue
		}

		commitMessage(consumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
