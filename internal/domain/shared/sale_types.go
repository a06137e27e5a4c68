package shared

// SaleEventKind defines the machine outcomes that are published
type SaleEventKind string

const (
	SaleEventDispensed          SaleEventKind = "DISPENSED"
	SaleEventRefunded           SaleEventKind = "REFUNDED"
	SaleEventConfigurationFault SaleEventKind = "CONFIGURATION_FAULT"
)

// Valid reports whether k is a known event kind
func (k SaleEventKind) Valid() bool {
	switch k {
	case SaleEventDispensed, SaleEventRefunded, SaleEventConfigurationFault:
		return true
	}
	return false
}

// EntryStatus defines journal entry states
type EntryStatus string

const (
	EntryStatusRecorded      EntryStatus = "RECORDED"
	EntryStatusRejected      EntryStatus = "REJECTED"
	EntryStatusNeedsOperator EntryStatus = "NEEDS_OPERATOR"
)

// RejectReason defines why an event could not be journaled as-is
type RejectReason string

const (
	RejectReasonUnknownKind      RejectReason = "UNKNOWN_KIND"
	RejectReasonMissingMachineID RejectReason = "MISSING_MACHINE_ID"
	RejectReasonNegativeAmount   RejectReason = "NEGATIVE_AMOUNT"
	RejectReasonChangeMismatch   RejectReason = "CHANGE_MISMATCH"
	RejectReasonEmptyRefund      RejectReason = "EMPTY_REFUND"
)
