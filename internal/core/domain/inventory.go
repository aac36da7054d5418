package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents one stocked product at the farm.
//
// Quantity is only ever mutated through the adjustment ledger: every change
// leaves a matching InventoryTransaction row, so the running sum of
// adjustments reconciles with Quantity at all times.
type InventoryItem struct {
	ItemID       string          `json:"itemID"` // Primary Key (UUID)
	Code         string          `json:"code"`   // Unique business key
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsLowStock reports whether on-hand quantity is at or below the configured
// minimum. This is the single definition of "low stock"; it is derived on
// read and never stored.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinimumStock)
}

// InventoryTransaction is one immutable ledger entry recording a signed
// quantity change applied to an item. Ledger rows are append-only: they are
// never updated or deleted.
type InventoryTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	ItemID        string          `json:"itemID"`
	Adjustment    decimal.Decimal `json:"adjustment"` // Signed delta
	Reason        string          `json:"reason"`
	ActorID       string          `json:"actorID"`
	ActorName     string          `json:"actorName,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
