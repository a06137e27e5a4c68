package components

import (
	"log/slog"

	"github.com/vending-controller/internal/config"
	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/journal_processor/service"
)

// CreateProcessingService wires the validator and recorder into a processing
// service running on a worker pool. It falls back to the plain service if the
// pool cannot be created. The returned pool is nil in that case.
func CreateProcessingService(
	journalRepo journal.Repository,
	logger *slog.Logger,
	cfg *config.Config,
) (service.ProcessingService, *service.WorkerPoolProcessingService) {
	baseService := service.NewProcessingService(
		NewEventValidator(journalRepo, logger),
		NewJournalRecorder(journalRepo, logger),
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService, nil
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService, workerPoolService
}
