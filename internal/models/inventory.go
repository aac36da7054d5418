package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem mirrors the inventory_items table.
type InventoryItem struct {
	ItemID       string          `json:"itemID" db:"item_id"`
	Code         string          `json:"code" db:"code"`
	Name         string          `json:"name" db:"name"`
	Quantity     decimal.Decimal `json:"quantity" db:"quantity"`
	MinimumStock decimal.Decimal `json:"minimumStock" db:"minimum_stock"`
	Unit         string          `json:"unit" db:"unit"`
	Location     string          `json:"location" db:"location"`
	Category     string          `json:"category" db:"category"`
	Description  string          `json:"description" db:"description"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// InventoryTransaction mirrors the inventory_transactions table.
// Rows are append-only; there is no update or delete path for them.
type InventoryTransaction struct {
	TransactionID string          `json:"transactionID" db:"transaction_id"`
	ItemID        string          `json:"itemID" db:"item_id"`
	Adjustment    decimal.Decimal `json:"adjustment" db:"adjustment"`
	Reason        string          `json:"reason" db:"reason"`
	ActorID       string          `json:"actorID" db:"actor_id"`
	ActorName     string          `json:"actorName" db:"actor_name"` // Joined from users
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
