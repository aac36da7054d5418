package mapping

import (
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:       d.ItemID,
		Code:         d.Code,
		Name:         d.Name,
		Quantity:     d.Quantity,
		MinimumStock: d.MinimumStock,
		Unit:         d.Unit,
		Location:     d.Location,
		Category:     d.Category,
		Description:  d.Description,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:       m.ItemID,
		Code:         m.Code,
		Name:         m.Name,
		Quantity:     m.Quantity,
		MinimumStock: m.MinimumStock,
		Unit:         m.Unit,
		Location:     m.Location,
		Category:     m.Category,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToDomainInventoryItemSlice converts model items to domain items
func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	ds := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryItem(m)
	}
	return ds
}

// ToDomainInventoryTransaction converts a model ledger row to its domain form
func ToDomainInventoryTransaction(m models.InventoryTransaction) domain.InventoryTransaction {
	return domain.InventoryTransaction{
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		Adjustment:    m.Adjustment,
		Reason:        m.Reason,
		ActorID:       m.ActorID,
		ActorName:     m.ActorName,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainInventoryTransactionSlice converts model ledger rows to domain form
func ToDomainInventoryTransactionSlice(ms []models.InventoryTransaction) []domain.InventoryTransaction {
	ds := make([]domain.InventoryTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryTransaction(m)
	}
	return ds
}
