package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/vending-controller/internal/domain/shared"
)

// WorkerPoolProcessingService bounds how many events are journaled at once
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// ProcessEvent runs the base service on a pool worker and waits for its result.
// It returns early with ctx.Err() if the context ends first.
func (s *WorkerPoolProcessingService) ProcessEvent(ctx context.Context, event *shared.SaleEvent) error {
	resultChan := make(chan error, 1)
	eventCopy := *event

	err := s.pool.Submit(func() {
		resultChan <- s.baseService.ProcessEvent(ctx, &eventCopy)
	})
	if err != nil {
		s.logger.Error("Failed to submit sale event to worker pool",
			"event_id", event.EventID.String(),
			"error", err,
		)
		return err
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown waits up to timeout for running workers, then releases the pool.
func (s *WorkerPoolProcessingService) Shutdown(timeout time.Duration) {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	if err := s.pool.ReleaseTimeout(timeout); err != nil {
		s.logger.Warn("Worker pool did not drain in time", "error", err)
	}
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
