package model

import "time"

type Material struct {
	BaseModel
	ShopID       string   `db:"shop_id" json:"shop_id"`
	Name         string   `db:"name" json:"name"`
	SKU          *string  `db:"sku" json:"sku"`
	Unit         string   `db:"unit" json:"unit"` // e.g. gram, pcs, ml
	UnitCost     float64  `db:"unit_cost" json:"unit_cost"`
	UnitPrice    *float64 `db:"unit_price" json:"unit_price"` // Nullable; only for materials also sold as-is
	CurrentStock float64  `db:"current_stock" json:"current_stock"`
	MinStock     float64  `db:"min_stock" json:"min_stock"`
	IsActive     bool     `db:"is_active" json:"is_active"`
}

// StockMovement is the audit row written for every stock mutation,
// covering both materials and product variations.
type StockMovement struct {
	ID             string  `db:"id" json:"id"`
	ShopID         string  `db:"shop_id" json:"shop_id"`
	SubjectType    string  `db:"subject_type" json:"subject_type"` // "material" or "variation"
	SubjectID      string  `db:"subject_id" json:"subject_id"`
	QuantityChange float64 `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64 `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64 `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string `db:"reference_type" json:"reference_type"`
	ReferenceID    *string `db:"reference_id" json:"reference_id"`
	Notes          string  `db:"notes" json:"notes"`
	CreatedBy      *string `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
