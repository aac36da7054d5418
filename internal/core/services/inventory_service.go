package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"
)

const (
	openingStockReason   = "opening stock"
	itemDetailLedgerSize = 10
	maxLedgerPageSize    = 100
	defaultLedgerPage    = 20
)

// inventoryService provides item management and the stock adjustment ledger.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
	}
}

// Ensure inventoryService implements the portssvc.InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// ListItems retrieves all items ordered by category then name.
func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	items, err := s.inventoryRepo.ListItems(ctx)
	if err != nil {
		logger.Error("Failed to list inventory items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// GetItemDetail retrieves an item with its most recent ledger entries.
func (s *inventoryService) GetItemDetail(ctx context.Context, itemID string) (*dto.InventoryItemDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		logger.Error("Failed to find inventory item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, err
	}
	if item == nil {
		return nil, apperrors.ErrNotFound
	}

	transactions, _, err := s.inventoryRepo.ListTransactionsByItemID(ctx, itemID, itemDetailLedgerSize, nil)
	if err != nil {
		logger.Error("Failed to list ledger entries for item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	detail := dto.InventoryItemDetail{
		InventoryItemResponse: dto.ToInventoryItemResponse(item),
		Transactions:          dto.ToInventoryTransactionResponses(transactions),
	}
	return &detail, nil
}

// ListLowStockItems retrieves items at or below their minimum stock.
func (s *inventoryService) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	items, err := s.inventoryRepo.ListLowStockItems(ctx)
	if err != nil {
		logger.Error("Failed to list low stock items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}

// ListItemTransactions retrieves a token-paginated ledger history for an item.
func (s *inventoryService) ListItemTransactions(ctx context.Context, itemID string, params dto.ListInventoryTransactionsParams) (*dto.ListInventoryTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.ErrNotFound
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLedgerPage
	}
	if limit > maxLedgerPageSize {
		limit = maxLedgerPageSize
	}

	transactions, nextToken, err := s.inventoryRepo.ListTransactionsByItemID(ctx, itemID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListInventoryTransactionsResponse{
		Success:   true,
		Data:      dto.ToInventoryTransactionResponses(transactions),
		NextToken: nextToken,
	}, nil
}

// CreateItem registers a new item. A positive opening quantity also writes
// the opening ledger entry so the ledger reconciles from day one.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, actorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
	}
	if req.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("%w: minimumStock cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		Unit:         req.Unit,
		Location:     req.Location,
		Category:     req.Category,
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if item.Code == "" || item.Name == "" {
		return nil, fmt.Errorf("%w: code and name are required", apperrors.ErrValidation)
	}

	existing, err := s.inventoryRepo.FindItemByCode(ctx, item.Code)
	if err != nil {
		logger.Error("Failed to check item code", slog.String("error", err.Error()), slog.String("code", item.Code))
		return nil, fmt.Errorf("failed to check item code: %w", err)
	}
	if existing != nil {
		logger.Warn("Duplicate item code", slog.String("code", item.Code))
		return nil, fmt.Errorf("%w: item code '%s' already exists", apperrors.ErrDuplicate, item.Code)
	}

	var opening *domain.InventoryTransaction
	if item.Quantity.IsPositive() {
		opening = &domain.InventoryTransaction{
			TransactionID: uuid.NewString(),
			ItemID:        item.ItemID,
			Adjustment:    item.Quantity,
			Reason:        openingStockReason,
			ActorID:       actorID,
			CreatedAt:     now,
		}
	}

	if err := s.inventoryRepo.SaveItem(ctx, item, opening); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate item code", slog.String("code", item.Code))
			return nil, fmt.Errorf("%w: item code '%s' already exists", apperrors.ErrDuplicate, item.Code)
		}
		logger.Error("Failed to save inventory item", slog.String("error", err.Error()), slog.String("code", item.Code))
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("code", item.Code))
	return &item, nil
}

// UpdateItem updates an item's mutable fields. Quantity never moves here.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, actorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		logger.Error("Failed to find inventory item for update", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, err
	}
	if item == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.MinimumStock != nil {
		if req.MinimumStock.IsNegative() {
			return nil, fmt.Errorf("%w: minimumStock cannot be negative", apperrors.ErrValidation)
		}
		item.MinimumStock = *req.MinimumStock
	}
	item.UpdatedAt = time.Now()

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		logger.Error("Failed to update inventory item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	logger.Info("Inventory item updated", slog.String("item_id", itemID), slog.String("actor_id", actorID))
	return item, nil
}

// AdjustQuantity applies a signed stock movement. The item update and the
// ledger entry commit together or not at all.
func (s *inventoryService) AdjustQuantity(ctx context.Context, itemID string, req dto.AdjustInventoryRequest, actorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Adjustment.IsZero() {
		return nil, fmt.Errorf("%w: adjustment cannot be zero", apperrors.ErrValidation)
	}

	actorName := ""
	if actor, err := s.userRepo.FindUserByID(ctx, actorID); err == nil && actor != nil {
		actorName = actor.Name
	}

	entry := domain.InventoryTransaction{
		TransactionID: uuid.NewString(),
		ItemID:        itemID,
		Adjustment:    req.Adjustment,
		Reason:        req.Reason,
		ActorID:       actorID,
		ActorName:     actorName,
		CreatedAt:     time.Now(),
	}

	item, err := s.inventoryRepo.AdjustQuantity(ctx, itemID, req.Adjustment, entry)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Warn("Stock adjustment rejected", slog.String("item_id", itemID), slog.String("adjustment", req.Adjustment.String()))
			return nil, err
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	logger.Info("Stock adjusted",
		slog.String("item_id", itemID),
		slog.String("adjustment", req.Adjustment.String()),
		slog.String("quantity", item.Quantity.String()),
		slog.String("actor_id", actorID))
	return item, nil
}

// csvColumnAliases maps accepted header spellings to canonical column names.
var csvColumnAliases = map[string]string{
	"code":          "code",
	"item_code":     "code",
	"name":          "name",
	"item_name":     "name",
	"quantity":      "quantity",
	"qty":           "quantity",
	"minimum_stock": "minimum_stock",
	"minimumstock":  "minimum_stock",
	"min_stock":     "minimum_stock",
	"unit":          "unit",
	"location":      "location",
	"category":      "category",
	"description":   "description",
}

// ImportItemsCSV parses a CSV stream and upserts its valid rows by item code.
// Rows that fail validation are skipped, not fatal.
func (s *inventoryService) ImportItemsCSV(ctx context.Context, r io.Reader, actorID string) (*dto.ImportInventoryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv file is empty or unreadable", apperrors.ErrValidation)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := csvColumnAliases[key]; ok {
			columns[canonical] = i
		}
	}
	if _, ok := columns["code"]; !ok {
		return nil, fmt.Errorf("%w: csv must have a 'code' column", apperrors.ErrValidation)
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("%w: csv must have a 'name' column", apperrors.ErrValidation)
	}

	field := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var items []domain.InventoryItem
	var skipped int64
	now := time.Now()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		code := field(record, "code")
		name := field(record, "name")
		if code == "" || name == "" {
			skipped++
			continue
		}

		quantity := decimal.Zero
		if raw := field(record, "quantity"); raw != "" {
			quantity, err = decimal.NewFromString(raw)
			if err != nil || quantity.IsNegative() {
				skipped++
				continue
			}
		}
		minimumStock := decimal.Zero
		if raw := field(record, "minimum_stock"); raw != "" {
			minimumStock, err = decimal.NewFromString(raw)
			if err != nil || minimumStock.IsNegative() {
				skipped++
				continue
			}
		}

		items = append(items, domain.InventoryItem{
			ItemID:       uuid.NewString(),
			Code:         code,
			Name:         name,
			Quantity:     quantity,
			MinimumStock: minimumStock,
			Unit:         field(record, "unit"),
			Location:     field(record, "location"),
			Category:     field(record, "category"),
			Description:  field(record, "description"),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	var imported int64
	if len(items) > 0 {
		imported, err = s.inventoryRepo.UpsertItems(ctx, items)
		if err != nil {
			logger.Error("Failed to upsert imported items", slog.String("error", err.Error()), slog.Int("rows", len(items)))
			return nil, fmt.Errorf("failed to upsert imported items: %w", err)
		}
	}

	logger.Info("Inventory csv imported",
		slog.Int64("imported", imported),
		slog.Int64("skipped", skipped),
		slog.String("actor_id", actorID))
	return &dto.ImportInventoryResponse{
		Success:       true,
		ImportedCount: imported,
		SkippedCount:  skipped,
	}, nil
}
