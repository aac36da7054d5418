package dto

import (
	"time"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest defines the payload for registering an item.
type CreateInventoryItemRequest struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
}

// UpdateInventoryItemRequest defines the mutable fields of an item.
// Quantity is deliberately absent; it only moves through adjustments.
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name"`
	Unit         *string          `json:"unit"`
	Location     *string          `json:"location"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
}

// AdjustInventoryRequest defines the payload for a stock adjustment.
type AdjustInventoryRequest struct {
	Adjustment decimal.Decimal `json:"adjustment" binding:"required"`
	Reason     string          `json:"reason"`
}

// ListInventoryTransactionsParams defines query parameters for ledger history.
type ListInventoryTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// InventoryItemResponse defines the data returned for an inventory item.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// InventoryTransactionResponse defines the data returned for a ledger entry.
type InventoryTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	ItemID        string          `json:"itemID"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	Reason        string          `json:"reason"`
	ActorID       string          `json:"actorID"`
	ActorName     string          `json:"actorName,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InventoryItemListResponse is the standard list envelope.
type InventoryItemListResponse struct {
	Success bool                    `json:"success"`
	Data    []InventoryItemResponse `json:"data"`
}

// InventoryItemEnvelope wraps a single item in the standard envelope.
type InventoryItemEnvelope struct {
	Success bool                  `json:"success"`
	Data    InventoryItemResponse `json:"data"`
}

// InventoryItemDetail is an item together with its most recent ledger entries.
type InventoryItemDetail struct {
	InventoryItemResponse
	Transactions []InventoryTransactionResponse `json:"transactions"`
}

// InventoryItemDetailEnvelope wraps an item detail in the standard envelope.
type InventoryItemDetailEnvelope struct {
	Success bool                `json:"success"`
	Data    InventoryItemDetail `json:"data"`
}

// ListInventoryTransactionsResponse is a token-paginated ledger page.
type ListInventoryTransactionsResponse struct {
	Success   bool                           `json:"success"`
	Data      []InventoryTransactionResponse `json:"data"`
	NextToken *string                        `json:"nextToken,omitempty"`
}

// ImportInventoryResponse reports the outcome of a CSV import.
type ImportInventoryResponse struct {
	Success       bool  `json:"success"`
	ImportedCount int64 `json:"importedCount"`
	SkippedCount  int64 `json:"skippedCount"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:       item.ItemID,
		Code:         item.Code,
		Name:         item.Name,
		Quantity:     item.Quantity,
		MinimumStock: item.MinimumStock,
		Unit:         item.Unit,
		Location:     item.Location,
		Category:     item.Category,
		Description:  item.Description,
		LowStock:     item.IsLowStock(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of items to DTOs.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}

// ToInventoryTransactionResponse converts a domain.InventoryTransaction to its DTO.
func ToInventoryTransactionResponse(txn *domain.InventoryTransaction) InventoryTransactionResponse {
	return InventoryTransactionResponse{
		TransactionID: txn.TransactionID,
		ItemID:        txn.ItemID,
		Adjustment:    txn.Adjustment,
		Reason:        txn.Reason,
		ActorID:       txn.ActorID,
		ActorName:     txn.ActorName,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToInventoryTransactionResponses converts a slice of ledger entries to DTOs.
func ToInventoryTransactionResponses(txns []domain.InventoryTransaction) []InventoryTransactionResponse {
	responses := make([]InventoryTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToInventoryTransactionResponse(&txns[i])
	}
	return responses
}
