package services

import (
	"context"
	"io"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory data
type InventoryReaderSvc interface {
	// ListItems retrieves all inventory items ordered by category then name.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// GetItemDetail retrieves an item together with its most recent ledger entries.
	GetItemDetail(ctx context.Context, itemID string) (*dto.InventoryItemDetail, error)

	// ListLowStockItems retrieves items at or below their minimum stock.
	ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListItemTransactions retrieves a token-paginated ledger history for an item.
	ListItemTransactions(ctx context.Context, itemID string, params dto.ListInventoryTransactionsParams) (*dto.ListInventoryTransactionsResponse, error)
}

// InventoryWriterSvc defines write operations for inventory data
type InventoryWriterSvc interface {
	// CreateItem registers a new item. A positive opening quantity also writes
	// the opening ledger entry.
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, actorID string) (*domain.InventoryItem, error)

	// UpdateItem updates an item's mutable fields.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, actorID string) (*domain.InventoryItem, error)

	// AdjustQuantity applies a signed stock adjustment and records the ledger entry.
	AdjustQuantity(ctx context.Context, itemID string, req dto.AdjustInventoryRequest, actorID string) (*domain.InventoryItem, error)

	// ImportItemsCSV parses a CSV stream and upserts its valid rows by item code.
	ImportItemsCSV(ctx context.Context, r io.Reader, actorID string) (*dto.ImportInventoryResponse, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
// This is a facade for clients that need access to all operations
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
