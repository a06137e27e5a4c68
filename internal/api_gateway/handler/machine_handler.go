package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/vending-controller/internal/api_gateway/service"
	"github.com/vending-controller/internal/domain/vending"
)

// MachineHandler handles HTTP requests for machine operations
type MachineHandler struct {
	machineService service.MachineService
	logger         *slog.Logger
}

// NewMachineHandler creates a new machine handler
func NewMachineHandler(logger *slog.Logger, machineService service.MachineService) *MachineHandler {
	return &MachineHandler{
		machineService: machineService,
		logger:         logger,
	}
}

// LoadProduct adds or replaces a product, creating the machine on first use
func (h *MachineHandler) LoadProduct(c *gin.Context) {
	machineID := c.Param("id")

	var req LoadProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.machineService.LoadProduct(c.Request.Context(), machineID, req.Name, req.Price, req.Quantity)
	if err != nil {
		if isConfigError(err) {
			RespondConfigError(c, err.Error())
			return
		}
		h.logger.Error("Failed to load product", "machine_id", machineID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, ProductResponse{
		MachineID: machineID,
		Name:      product.Name,
		Price:     int64(product.Price),
		Quantity:  req.Quantity,
	})
}

// InsertCoin feeds one coin to a machine
func (h *MachineHandler) InsertCoin(c *gin.Context) {
	var req InsertCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	value, msg := h.coinValue(req)
	if msg != "" {
		RespondBadRequest(c, msg)
		return
	}

	outcome, err := h.machineService.InsertCoin(c.Request.Context(), c.Param("id"), value)
	h.respondOutcome(c, outcome, err)
}

// SelectProduct chooses a product on a machine
func (h *MachineHandler) SelectProduct(c *gin.Context) {
	var req SelectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := h.machineService.SelectProduct(c.Request.Context(), c.Param("id"), req.Product)
	h.respondOutcome(c, outcome, err)
}

// Refund returns the inserted balance
func (h *MachineHandler) Refund(c *gin.Context) {
	outcome, err := h.machineService.Refund(c.Request.Context(), c.Param("id"))
	h.respondOutcome(c, outcome, err)
}

// GetStatus returns a snapshot of the machine, 404 if it was never loaded
func (h *MachineHandler) GetStatus(c *gin.Context) {
	machineID := c.Param("id")

	snapshot, err := h.machineService.Status(c.Request.Context(), machineID)
	if err != nil {
		h.respondMachineError(c, machineID, err)
		return
	}

	RespondOK(c, mapSnapshotToResponse(snapshot))
}

// coinValue resolves the coin of a request. A non-empty message means the
// request is malformed.
func (h *MachineHandler) coinValue(req InsertCoinRequest) (int64, string) {
	switch {
	case req.Denomination != "":
		d, ok := h.machineService.Denominations().Lookup(req.Denomination)
		if !ok {
			return 0, "Unknown denomination: " + req.Denomination
		}
		if req.Value != nil && *req.Value != int64(d.Value) {
			return 0, "Value does not match denomination " + d.Name
		}
		return int64(d.Value), ""
	case req.Value != nil:
		return *req.Value, ""
	default:
		return 0, "Either value or denomination is required"
	}
}

func (h *MachineHandler) respondOutcome(c *gin.Context, outcome vending.Outcome, err error) {
	if err != nil {
		h.respondMachineError(c, c.Param("id"), err)
		return
	}

	response := mapOutcomeToResponse(outcome)
	if outcome.IsFault() {
		RespondConfigurationFault(c, response, outcome.Reason)
		return
	}
	RespondOK(c, response)
}

func (h *MachineHandler) respondMachineError(c *gin.Context, machineID string, err error) {
	var notFound vending.ErrMachineNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Machine not found")
		return
	}
	h.logger.Error("Machine operation failed", "machine_id", machineID, "error", err)
	RespondInternalError(c)
}

func isConfigError(err error) bool {
	return errors.Is(err, vending.ErrEmptyProductName) ||
		errors.Is(err, vending.ErrInvalidPrice) ||
		errors.Is(err, vending.ErrInvalidQuantity)
}

func mapChange(change []vending.CoinCount) []ChangeResponse {
	if len(change) == 0 {
		return nil
	}
	lines := make([]ChangeResponse, 0, len(change))
	for _, c := range change {
		lines = append(lines, ChangeResponse{
			Denomination: c.Denomination.Name,
			Value:        int64(c.Denomination.Value),
			Count:        c.Count,
		})
	}
	return lines
}

func mapOutcomeToResponse(o vending.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Kind:      string(o.Kind),
		Product:   o.Product,
		Price:     int64(o.Price),
		Remaining: int64(o.Remaining),
		Coin:      int64(o.Coin),
		Amount:    int64(o.Amount),
		Change:    mapChange(o.Change),
		Balance:   int64(o.Balance),
		Reason:    o.Reason,
	}
}

func mapSnapshotToResponse(s vending.Snapshot) MachineStatusResponse {
	inventory := make([]StockResponse, 0, len(s.Inventory))
	for _, level := range s.Inventory {
		inventory = append(inventory, StockResponse{
			Name:  level.Product.Name,
			Price: int64(level.Product.Price),
			Stock: level.Stock,
		})
	}

	return MachineStatusResponse{
		MachineID: s.MachineID,
		Phase:     string(s.State.Phase),
		Selection: s.State.Selection,
		Balance:   int64(s.Balance),
		Inventory: inventory,
	}
}
