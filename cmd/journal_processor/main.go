package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vending-controller/internal/config"
	"github.com/vending-controller/internal/data/mongo"
	"github.com/vending-controller/internal/journal_processor/components"
	"github.com/vending-controller/internal/journal_processor/consumer"
	"github.com/vending-controller/internal/logger"
	"github.com/vending-controller/internal/platform/messaging/consumers"
	"github.com/vending-controller/internal/platform/messaging/producers"
	"github.com/vending-controller/internal/platform/persistence"
)

const shutdownTimeout = 30 * time.Second

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("journal_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting Journal Processor",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	journalRepo := mongo.NewJournalRepository(log, mongoDB.Database())
	if err := journalRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to create journal indexes", "error", err)
		os.Exit(1)
	}

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	var deadLetters producers.DeadLetterPublisher
	if dlqProducer != nil {
		deadLetters = dlqProducer
	}

	processingService, workerPool := components.CreateProcessingService(journalRepo, log, cfg)
	saleEventHandler := consumer.NewSaleEventHandler(log, processingService, deadLetters)

	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)
	if err := kafkaConsumer.Subscribe(appCtx, saleEventHandler.HandleMessage); err != nil {
		log.Error("Failed to start Kafka consumer", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case <-kafkaConsumer.Done():
		log.Warn("Kafka consumer stopped unexpectedly")
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	select {
	case <-kafkaConsumer.Done():
		log.Info("Kafka consumer stopped")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	if workerPool != nil {
		workerPool.Shutdown(shutdownTimeout)
	}

	if dlqProducer != nil {
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if err != nil {
		log.Error("Journal Processor shutdown completed with errors")
	} else {
		log.Info("Journal Processor shutdown completed successfully")
	}
}
