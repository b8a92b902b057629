package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplyItem is a stockable hospital supply (consumable, drug, device).
type SupplyItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	SKU       string          `json:"sku" db:"sku"`
	Category  string          `json:"category" db:"category"`
	Unit      string          `json:"unit" db:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ItemSearchFilter holds search and filter criteria for item queries
type ItemSearchFilter struct {
	Query     string `json:"query,omitempty"`    // Full-text search across name, SKU
	Category  string `json:"category,omitempty"` // Category filter
	SortBy    string `json:"sort_by,omitempty"`  // Sort field: name, sku, created_at
	SortOrder string `json:"sort_order,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
