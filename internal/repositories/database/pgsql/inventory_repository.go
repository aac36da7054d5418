package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	"github.com/agrovia/farm_ops_app/internal/models"
	"github.com/agrovia/farm_ops_app/internal/utils/mapping"
	"github.com/agrovia/farm_ops_app/internal/utils/pagination"
)

const inventoryItemColumns = `item_id, code, name, quantity, minimum_stock, unit, location, category, description, created_at, updated_at`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.Code,
		&m.Name,
		&m.Quantity,
		&m.MinimumStock,
		&m.Unit,
		&m.Location,
		&m.Category,
		&m.Description,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertTransactionQuery = `
	INSERT INTO inventory_transactions (transaction_id, item_id, adjustment, reason, actor_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// SaveItem inserts a new item and, when given, its opening ledger entry in
// one transaction so quantity and ledger never disagree.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem, opening *domain.InventoryTransaction) error {
	m := mapping.ToModelInventoryItem(item)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertItemQuery := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertItemQuery,
		m.ItemID,
		m.Code,
		m.Name,
		m.Quantity,
		m.MinimumStock,
		m.Unit,
		m.Location,
		m.Category,
		m.Description,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: item with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save inventory item %s: %w", m.ItemID, err)
	}

	if opening != nil {
		_, err = tx.Exec(ctx, insertTransactionQuery,
			opening.TransactionID,
			opening.ItemID,
			opening.Adjustment,
			opening.Reason,
			opening.ActorID,
			opening.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save opening ledger entry for %s: %w", m.ItemID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindItemByID retrieves an item by ID. Returns (nil, nil) when absent.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE item_id = $1;`
	m, err := scanInventoryItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// FindItemByCode retrieves an item by its business code. Returns (nil, nil) when absent.
func (r *PgxInventoryRepository) FindItemByCode(ctx context.Context, code string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE code = $1;`
	m, err := scanInventoryItem(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory item by code %s: %w", code, err)
	}
	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

func (r *PgxInventoryRepository) listItems(ctx context.Context, query string, args ...interface{}) ([]domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	var modelsOut []models.InventoryItem
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		modelsOut = append(modelsOut, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}
	return mapping.ToDomainInventoryItemSlice(modelsOut), nil
}

// ListItems retrieves all items ordered by category then name.
func (r *PgxInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.listItems(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items ORDER BY category, name;`)
}

// ListLowStockItems retrieves items at or below their minimum stock, by name.
func (r *PgxInventoryRepository) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.listItems(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE quantity <= minimum_stock ORDER BY name;`)
}

// UpdateItem updates an item's mutable fields. Quantity is excluded on
// purpose; it only changes through AdjustQuantity.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)

	query := `
		UPDATE inventory_items
		SET name = $2, unit = $3, location = $4, category = $5, description = $6, minimum_stock = $7, updated_at = $8
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.Name,
		m.Unit,
		m.Location,
		m.Category,
		m.Description,
		m.MinimumStock,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", m.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a signed delta and appends the ledger entry in one
// transaction. The single conditional UPDATE both serializes concurrent
// adjusts on the row and rejects drops below zero.
func (r *PgxInventoryRepository) AdjustQuantity(ctx context.Context, itemID string, delta decimal.Decimal, entry domain.InventoryTransaction) (*domain.InventoryItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE inventory_items
		SET quantity = quantity + $2, updated_at = $3
		WHERE item_id = $1 AND quantity + $2 >= 0
		RETURNING ` + inventoryItemColumns + `;
	`
	m, err := scanInventoryItem(tx.QueryRow(ctx, updateQuery, itemID, delta, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing item from a rejected negative balance.
			var exists bool
			if checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE item_id = $1)`, itemID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check inventory item %s: %w", itemID, checkErr)
			}
			if !exists {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("%w: adjustment %s would drop quantity below zero", apperrors.ErrInsufficientStock, delta.String())
		}
		return nil, fmt.Errorf("failed to adjust inventory item %s: %w", itemID, err)
	}

	_, err = tx.Exec(ctx, insertTransactionQuery,
		entry.TransactionID,
		entry.ItemID,
		entry.Adjustment,
		entry.Reason,
		entry.ActorID,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save ledger entry for %s: %w", itemID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// UpsertItems inserts items, updating mutable fields on code conflicts.
// Existing quantities are left alone so an import never silently moves stock.
func (r *PgxInventoryRepository) UpsertItems(ctx context.Context, items []domain.InventoryItem) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	upsertQuery := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
			minimum_stock = EXCLUDED.minimum_stock,
			unit = EXCLUDED.unit,
			location = EXCLUDED.location,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at;
	`
	var applied int64
	for i := range items {
		m := mapping.ToModelInventoryItem(items[i])
		tag, err := tx.Exec(ctx, upsertQuery,
			m.ItemID,
			m.Code,
			m.Name,
			m.Quantity,
			m.MinimumStock,
			m.Unit,
			m.Location,
			m.Category,
			m.Description,
			m.CreatedAt,
			m.UpdatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert inventory item %s: %w", m.Code, err)
		}
		applied += tag.RowsAffected()
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return applied, nil
}

// ListTransactionsByItemID pages through an item's ledger, newest first,
// using a keyset token so concurrent inserts cannot shift pages.
func (r *PgxInventoryRepository) ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error) {
	query := `
		SELECT t.transaction_id, t.item_id, t.adjustment, t.reason, t.actor_id, COALESCE(u.name, ''), t.created_at
		FROM inventory_transactions t
		LEFT JOIN users u ON t.actor_id = u.user_id
		WHERE t.item_id = $1
	`
	args := []interface{}{itemID}

	if nextToken != nil && *nextToken != "" {
		createdAt, transactionID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (t.created_at, t.transaction_id) < ($2, $3)`
		args = append(args, createdAt, transactionID)
	}

	query += fmt.Sprintf(` ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger entries for %s: %w", itemID, err)
	}
	defer rows.Close()

	var modelsOut []models.InventoryTransaction
	for rows.Next() {
		var m models.InventoryTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.ItemID,
			&m.Adjustment,
			&m.Reason,
			&m.ActorID,
			&m.ActorName,
			&m.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		modelsOut = append(modelsOut, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	var token *string
	if len(modelsOut) > limit {
		modelsOut = modelsOut[:limit]
		last := modelsOut[len(modelsOut)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainInventoryTransactionSlice(modelsOut), token, nil
}
