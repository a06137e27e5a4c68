package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vending-controller/internal/api_gateway/middleware"
	"github.com/vending-controller/internal/domain/shared"
	"github.com/vending-controller/internal/domain/vending"
	"github.com/vending-controller/internal/platform/messaging/producers"
)

// MachineServiceImpl implements the MachineService interface
type MachineServiceImpl struct {
	fleet     *vending.Fleet
	publisher producers.SaleEventPublisher
	currency  string
	logger    *slog.Logger
	now       func() time.Time
}

// NewMachineService creates a machine service. publisher may be nil, in which
// case outcomes are only logged.
func NewMachineService(logger *slog.Logger, fleet *vending.Fleet, publisher producers.SaleEventPublisher, currency string) *MachineServiceImpl {
	return &MachineServiceImpl{
		fleet:     fleet,
		publisher: publisher,
		currency:  currency,
		logger:    logger,
		now:       time.Now,
	}
}

// LoadProduct adds or replaces a product on a machine
func (s *MachineServiceImpl) LoadProduct(ctx context.Context, machineID, name string, price int64, quantity int) (vending.Product, error) {
	product, err := vending.NewProduct(name, vending.Amount(price))
	if err == nil && quantity < 0 {
		err = vending.ErrInvalidQuantity
	}
	if err == nil {
		err = s.fleet.GetOrCreate(machineID).LoadProduct(product.Name, product.Price, quantity)
	}
	if err != nil {
		s.logger.Warn("Rejected product load",
			"machine_id", machineID,
			"product", name,
			"price", price,
			"quantity", quantity,
			"error", err,
		)
		return vending.Product{}, err
	}

	s.logger.Info("Product loaded",
		"machine_id", machineID,
		"product", product.Name,
		"price", price,
		"quantity", quantity,
	)
	return product, nil
}

// InsertCoin feeds one coin to a machine
func (s *MachineServiceImpl) InsertCoin(ctx context.Context, machineID string, value int64) (vending.Outcome, error) {
	return s.run(ctx, machineID, func(m *vending.Machine) vending.Outcome {
		return m.InsertCoin(vending.Amount(value))
	})
}

// SelectProduct chooses a product on a machine
func (s *MachineServiceImpl) SelectProduct(ctx context.Context, machineID, product string) (vending.Outcome, error) {
	return s.run(ctx, machineID, func(m *vending.Machine) vending.Outcome {
		return m.SelectProduct(product)
	})
}

// Refund returns the inserted balance of a machine
func (s *MachineServiceImpl) Refund(ctx context.Context, machineID string) (vending.Outcome, error) {
	return s.run(ctx, machineID, func(m *vending.Machine) vending.Outcome {
		return m.Refund()
	})
}

// Status returns a snapshot of a machine
func (s *MachineServiceImpl) Status(ctx context.Context, machineID string) (vending.Snapshot, error) {
	machine, err := s.fleet.Get(machineID)
	if err != nil {
		return vending.Snapshot{}, err
	}
	return machine.Status(), nil
}

// Denominations returns the coin set shared by the fleet
func (s *MachineServiceImpl) Denominations() vending.DenominationSet {
	return s.fleet.Denominations()
}

func (s *MachineServiceImpl) run(ctx context.Context, machineID string, op func(*vending.Machine) vending.Outcome) (vending.Outcome, error) {
	machine, err := s.fleet.Get(machineID)
	if err != nil {
		return vending.Outcome{}, err
	}

	outcome := op(machine)

	log := s.logger.With("machine_id", machineID, "outcome", string(outcome.Kind))
	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		log = log.With("correlation_id", correlationID)
	}
	if outcome.IsFault() {
		log.Error("Machine reported a configuration fault",
			"product", outcome.Product,
			"price", outcome.Price,
			"balance", outcome.Balance,
			"reason", outcome.Reason,
		)
	} else {
		log.Debug("Machine operation completed", "balance", outcome.Balance)
	}

	s.publish(ctx, log, machineID, outcome)
	return outcome, nil
}

// publish emits a sale event for outcomes that move money or need an
// operator. Failures are logged and never change the outcome.
func (s *MachineServiceImpl) publish(ctx context.Context, log *slog.Logger, machineID string, outcome vending.Outcome) {
	event := s.saleEvent(ctx, machineID, outcome)
	if event == nil || s.publisher == nil {
		return
	}

	if err := s.publisher.PublishSaleEvent(ctx, event); err != nil {
		log.Error("Failed to publish sale event",
			"event_id", event.EventID,
			"kind", string(event.Kind),
			"error", err,
		)
		return
	}

	log.Info("Sale event published",
		"event_id", event.EventID,
		"kind", string(event.Kind),
		"amount", event.Amount,
	)
}

func (s *MachineServiceImpl) saleEvent(ctx context.Context, machineID string, outcome vending.Outcome) *shared.SaleEvent {
	event := &shared.SaleEvent{
		EventID:       uuid.New(),
		MachineID:     machineID,
		Product:       outcome.Product,
		Price:         int64(outcome.Price),
		Currency:      s.currency,
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
		Timestamp:     s.now().UTC(),
	}

	switch {
	case outcome.Kind == vending.OutcomeDispensed:
		event.Kind = shared.SaleEventDispensed
		event.Amount = int64(outcome.Amount)
		event.Change = changeLines(outcome.Change)
	case outcome.Kind == vending.OutcomeRefunded && outcome.Amount > 0:
		event.Kind = shared.SaleEventRefunded
		event.Amount = int64(outcome.Amount)
	case outcome.IsFault():
		// The balance is still held by the machine; report it for the operator
		event.Kind = shared.SaleEventConfigurationFault
		event.Amount = int64(outcome.Balance)
		event.Reason = outcome.Reason
	default:
		return nil
	}
	return event
}

func changeLines(change []vending.CoinCount) []shared.ChangeLine {
	if len(change) == 0 {
		return nil
	}
	lines := make([]shared.ChangeLine, 0, len(change))
	for _, c := range change {
		lines = append(lines, shared.ChangeLine{
			Denomination: c.Denomination.Name,
			Value:        int64(c.Denomination.Value),
			Count:        c.Count,
		})
	}
	return lines
}
