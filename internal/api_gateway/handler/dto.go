package handler

// LoadProductRequest adds or replaces a product on a machine. Price and
// quantity are validated by the machine, so invalid values come back as
// CONFIG_ERROR rather than binding errors.
type LoadProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"` // Cents
	Quantity int    `json:"quantity"`
}

// ProductResponse echoes a loaded product
type ProductResponse struct {
	MachineID string `json:"machine_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// InsertCoinRequest carries one coin, either by value or by denomination name
type InsertCoinRequest struct {
	Value        *int64 `json:"value,omitempty"`
	Denomination string `json:"denomination,omitempty"`
}

// SelectProductRequest chooses a product by name
type SelectProductRequest struct {
	Product string `json:"product" binding:"required"`
}

// ChangeResponse is one denomination of paid out change
type ChangeResponse struct {
	Denomination string `json:"denomination"`
	Value        int64  `json:"value"`
	Count        int    `json:"count"`
}

// OutcomeResponse is the result of a coin, selection or refund request
type OutcomeResponse struct {
	Kind      string           `json:"kind"`
	Product   string           `json:"product,omitempty"`
	Price     int64            `json:"price,omitempty"`
	Remaining int64            `json:"remaining,omitempty"`
	Coin      int64            `json:"coin,omitempty"`
	Amount    int64            `json:"amount,omitempty"`
	Change    []ChangeResponse `json:"change,omitempty"`
	Balance   int64            `json:"balance"`
	Reason    string           `json:"reason,omitempty"`
}

// StockResponse is one inventory slot in a status response
type StockResponse struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// MachineStatusResponse is a point-in-time view of a machine
type MachineStatusResponse struct {
	MachineID string          `json:"machine_id"`
	Phase     string          `json:"phase"`
	Selection string          `json:"selection,omitempty"`
	Balance   int64           `json:"balance"`
	Inventory []StockResponse `json:"inventory"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	EventID       string           `json:"event_id"`
	MachineID     string           `json:"machine_id"`
	Kind          string           `json:"kind"`
	Product       string           `json:"product,omitempty"`
	Price         int64            `json:"price"`
	Amount        int64            `json:"amount"`
	Change        []ChangeResponse `json:"change,omitempty"`
	Currency      string           `json:"currency"`
	Status        string           `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	OccurredAt    string           `json:"occurred_at"`
	RecordedAt    string           `json:"recorded_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
