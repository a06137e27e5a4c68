package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vending-controller/internal/api_gateway"
	"github.com/vending-controller/internal/api_gateway/service"
	"github.com/vending-controller/internal/config"
	"github.com/vending-controller/internal/data/mongo"
	"github.com/vending-controller/internal/data/postgres"
	"github.com/vending-controller/internal/domain/vending"
	"github.com/vending-controller/internal/logger"
	"github.com/vending-controller/internal/platform/messaging/producers"
	"github.com/vending-controller/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	machineCfg, err := cfg.Vending.MachineConfig()
	if err != nil {
		log.Error("Invalid vending configuration", "error", err)
		os.Exit(1)
	}
	fleet, err := vending.NewFleet(machineCfg)
	if err != nil {
		log.Error("Failed to create machine fleet", "error", err)
		os.Exit(1)
	}

	// The planogram is read once; machines keep their state in memory afterwards
	if cfg.Vending.PlanogramEnabled {
		postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
		if err != nil {
			log.Error("Failed to initialize PostgreSQL", "error", err)
			os.Exit(1)
		}

		readOnly := postgresDB.ReadOnly()
		loader := service.NewPlanogramLoader(log, readOnly, postgres.NewPlanogramRepository(log, readOnly), fleet)
		if _, err := loader.LoadAll(appCtx); err != nil {
			log.Error("Failed to load planogram", "error", err)
			postgresDB.Close()
			os.Exit(1)
		}
		postgresDB.Close()
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	saleEventProducer, err := producers.NewSaleEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize sale event producer", "error", err)
		os.Exit(1)
	}

	journalRepo := mongo.NewJournalRepository(log, mongoDB.Database())

	machineService := service.NewMachineService(log, fleet, saleEventProducer, cfg.Vending.Currency)
	journalService := service.NewJournalService(log, journalRepo)

	server := api_gateway.NewServer(log, cfg, machineService, journalService)
	log.Info("REST server initialized", "machines", len(fleet.IDs()))

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Stop taking requests before closing the producer so in-flight sales still publish
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = saleEventProducer.Close(); err != nil {
		log.Error("Error closing sale event producer", "error", err)
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
