package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInventoryItemIsLowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		minimum  string
		expected bool
	}{
		{"well above minimum", "100", "10", false},
		{"exactly at minimum", "10", "10", true},
		{"below minimum", "9.99", "10", true},
		{"just above minimum", "10.01", "10", false},
		{"zero quantity zero minimum", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{
				Quantity:     decimal.RequireFromString(tt.quantity),
				MinimumStock: decimal.RequireFromString(tt.minimum),
			}
			assert.Equal(t, tt.expected, item.IsLowStock())
		})
	}
}

func TestWorkLogStatusIsValid(t *testing.T) {
	assert.True(t, WorkLogPending.IsValid())
	assert.True(t, WorkLogApproved.IsValid())
	assert.True(t, WorkLogRejected.IsValid())
	assert.False(t, WorkLogStatus("archived").IsValid())
	assert.False(t, WorkLogStatus("").IsValid())
}
