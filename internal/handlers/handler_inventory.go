package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// inventoryHandler handles HTTP requests related to inventory items.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: is,
	}
}

// RegisterInventoryRoutes registers all inventory-related routes.
func RegisterInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.listItems)
		inventory.GET("/low-stock", h.listLowStockItems)
		inventory.GET("/:id", h.getItem)
		inventory.GET("/:id/transactions", h.listItemTransactions)

		writes := inventory.Group("", middleware.RequireAdmin())
		{
			writes.POST("", h.createItem)
			writes.PUT("/:id", h.updateItem)
			writes.POST("/:id/adjust", h.adjustQuantity)
			writes.POST("/import", h.importItems)
		}
	}
}

// listItems godoc
// @Summary List inventory items
// @Description Retrieves all inventory items ordered by category then name
// @Tags inventory
// @Produce  json
// @Success 200 {object} dto.InventoryItemListResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list inventory items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list inventory items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list inventory items"})
		return
	}

	c.JSON(http.StatusOK, dto.InventoryItemListResponse{
		Success: true,
		Data:    dto.ToInventoryItemResponses(items),
	})
}

// getItem godoc
// @Summary Get an inventory item
// @Description Retrieves an item together with its most recent ledger entries
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.InventoryItemDetailEnvelope
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve item"
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	logger = logger.With(slog.String("item_id", itemID))

	detail, err := h.inventoryService.GetItemDetail(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Inventory item not found")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			logger.Error("Failed to get inventory item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.InventoryItemDetailEnvelope{Success: true, Data: *detail})
}

// listLowStockItems godoc
// @Summary List low stock items
// @Description Retrieves items at or below their minimum stock level
// @Tags inventory
// @Produce  json
// @Success 200 {object} dto.InventoryItemListResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list low stock items"
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *inventoryHandler) listLowStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.ListLowStockItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list low stock items"})
		return
	}

	c.JSON(http.StatusOK, dto.InventoryItemListResponse{
		Success: true,
		Data:    dto.ToInventoryItemResponses(items),
	})
}

// listItemTransactions godoc
// @Summary List ledger entries for an item
// @Description Retrieves a token-paginated ledger history for an inventory item, newest first
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Opaque pagination token from the previous page"
// @Success 200 {object} dto.ListInventoryTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination token"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list ledger entries"
// @Security BearerAuth
// @Router /inventory/{id}/transactions [get]
func (h *inventoryHandler) listItemTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var params dto.ListInventoryTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListItemTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("item_id", itemID))

	resp, err := h.inventoryService.ListItemTransactions(c.Request.Context(), itemID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Inventory item not found for ledger listing")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list ledger entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createItem godoc
// @Summary Create an inventory item
// @Description Registers a new item. A positive opening quantity also writes the opening ledger entry.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Failed to create item"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to create inventory item", slog.String("code", req.Code), slog.String("name", req.Name))

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate item code", slog.String("code", req.Code))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Item code already exists"})
		} else {
			logger.Error("Failed to create inventory item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create item"})
		}
		return
	}

	logger.Info("Inventory item created successfully", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.InventoryItemEnvelope{Success: true, Data: dto.ToInventoryItemResponse(item)})
}

// updateItem godoc
// @Summary Update an inventory item
// @Description Updates an item's mutable fields. Quantity only moves through adjustments.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateInventoryItemRequest true "Fields to update"
// @Success 200 {object} dto.InventoryItemEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update item"
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("item_id", itemID), slog.String("actor_id", actorID))
	logger.Info("Received request to update inventory item")

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), itemID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Inventory item not found for update")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			logger.Error("Failed to update inventory item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update item"})
		}
		return
	}

	logger.Info("Inventory item updated successfully")
	c.JSON(http.StatusOK, dto.InventoryItemEnvelope{Success: true, Data: dto.ToInventoryItemResponse(item)})
}

// adjustQuantity godoc
// @Summary Adjust item stock
// @Description Applies a signed stock adjustment and records the ledger entry. Rejects adjustments that would drive stock negative.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   adjustment body dto.AdjustInventoryRequest true "Signed adjustment and reason"
// @Success 200 {object} dto.InventoryItemEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input or insufficient stock"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to adjust stock"
// @Security BearerAuth
// @Router /inventory/{id}/adjust [post]
func (h *inventoryHandler) adjustQuantity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustQuantity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("item_id", itemID), slog.String("actor_id", actorID))
	logger.Info("Received request to adjust stock", slog.String("adjustment", req.Adjustment.String()))

	item, err := h.inventoryService.AdjustQuantity(c.Request.Context(), itemID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adjusting stock", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Warn("Insufficient stock for adjustment", slog.String("adjustment", req.Adjustment.String()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Insufficient stock for this adjustment"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Inventory item not found for adjustment")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			logger.Error("Failed to adjust stock", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to adjust stock"})
		}
		return
	}

	logger.Info("Stock adjusted successfully", slog.String("quantity", item.Quantity.String()))
	c.JSON(http.StatusOK, dto.InventoryItemEnvelope{Success: true, Data: dto.ToInventoryItemResponse(item)})
}

// importItems godoc
// @Summary Import inventory items from CSV
// @Description Parses an uploaded CSV file and upserts its valid rows by item code. Invalid rows are skipped.
// @Tags inventory
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportInventoryResponse
// @Failure 400 {object} dto.ErrorResponse "Missing file or unusable CSV"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Failed to import items"
// @Security BearerAuth
// @Router /inventory/import [post]
func (h *inventoryHandler) importItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing CSV file in import request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "CSV file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded CSV file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to import inventory items", slog.String("filename", fileHeader.Filename), slog.Int64("size", fileHeader.Size))

	resp, err := h.inventoryService.ImportItemsCSV(c.Request.Context(), file, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Unusable CSV file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to import inventory items", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to import items"})
		}
		return
	}

	logger.Info("Inventory items imported", slog.Int64("imported", resp.ImportedCount), slog.Int64("skipped", resp.SkippedCount))
	c.JSON(http.StatusOK, resp)
}
