package repositories

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for inventory data
type InventoryReader interface {
	// FindItemByID retrieves a specific inventory item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemByCode retrieves an inventory item by its business code.
	FindItemByCode(ctx context.Context, code string) (*domain.InventoryItem, error)

	// ListItems retrieves all inventory items ordered by category then name.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListLowStockItems retrieves items whose quantity is at or below their
	// minimum stock, ordered by name.
	ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListTransactionsByItemID retrieves a paginated ledger history for an item
	// using token-based pagination, newest first. It returns the entries, a
	// token for the next page, and an error.
	ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error)
}

// InventoryWriter defines write operations for inventory data
type InventoryWriter interface {
	// SaveItem persists a new inventory item and, when its opening quantity is
	// positive, the matching opening ledger entry, within one transaction.
	SaveItem(ctx context.Context, item domain.InventoryItem, opening *domain.InventoryTransaction) error

	// UpdateItem updates an item's mutable fields. Quantity is never touched here.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// AdjustQuantity applies a signed delta to an item's quantity and appends
	// the ledger entry in one transaction. It returns apperrors.ErrNotFound when
	// the item does not exist and apperrors.ErrInsufficientStock when the delta
	// would take the quantity below zero.
	AdjustQuantity(ctx context.Context, itemID string, delta decimal.Decimal, entry domain.InventoryTransaction) (*domain.InventoryItem, error)

	// UpsertItems inserts the given items, updating mutable fields on code
	// conflicts. It returns the number of rows applied.
	UpsertItems(ctx context.Context, items []domain.InventoryItem) (int64, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
// This is a facade for clients that need access to all operations
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
