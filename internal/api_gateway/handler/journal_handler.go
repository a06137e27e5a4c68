package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vending-controller/internal/api_gateway/service"
	"github.com/vending-controller/internal/domain/journal"
)

// JournalHandler handles HTTP requests for the sales journal
type JournalHandler struct {
	journalService service.JournalService
	logger         *slog.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(logger *slog.Logger, journalService service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// GetByEventID retrieves one journal entry, returns 404 if not found
func (h *JournalHandler) GetByEventID(c *gin.Context) {
	idParam := c.Param("event_id")
	eventID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Warn("Invalid event ID", "event_id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("Failed to get journal entry", "event_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}
	if entry == nil {
		RespondNotFound(c, "Journal entry not found")
		return
	}

	RespondOK(c, mapJournalEntryToResponse(entry))
}

// GetByMachineID retrieves a machine's journal, newest first
func (h *JournalHandler) GetByMachineID(c *gin.Context) {
	machineID := c.Param("id")

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, total, err := h.journalService.GetMachineJournal(
		c.Request.Context(),
		machineID,
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		h.logger.Error("Failed to get machine journal", "machine_id", machineID, "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]JournalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, mapJournalEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, response, pagination.Page, pagination.PerPage, int(total))
}

func mapJournalEntryToResponse(entry *journal.Entry) JournalEntryResponse {
	var change []ChangeResponse
	for _, line := range entry.Change {
		change = append(change, ChangeResponse{
			Denomination: line.Denomination,
			Value:        line.Value,
			Count:        line.Count,
		})
	}

	return JournalEntryResponse{
		EventID:       entry.EventID,
		MachineID:     entry.MachineID,
		Kind:          string(entry.Kind),
		Product:       entry.Product,
		Price:         entry.Price,
		Amount:        entry.Amount,
		Change:        change,
		Currency:      entry.Currency,
		Status:        string(entry.Status),
		Reason:        entry.Reason,
		CorrelationID: entry.CorrelationID,
		OccurredAt:    entry.OccurredAt.Format(time.RFC3339),
		RecordedAt:    entry.RecordedAt.Format(time.RFC3339),
	}
}
