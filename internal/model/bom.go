package model

// BOMItem is material consumption for one unit of a base product.
// TotalCost is derived: quantity * unit cost.
type BOMItem struct {
	BaseModel
	ProductID  string  `db:"product_id" json:"product_id"`
	MaterialID string  `db:"material_id" json:"material_id"`
	Quantity   float64 `db:"quantity" json:"quantity"`
	UnitCost   float64 `db:"unit_cost" json:"unit_cost"`
	TotalCost  float64 `db:"total_cost" json:"total_cost"`
	Notes      *string `db:"notes" json:"notes"`
	IsActive   bool    `db:"is_active" json:"is_active"`

	Material *Material `db:"-" json:"material,omitempty"` // Joined data
}

// BOMVariation overrides (or extends) the product BOM for one specific
// variation. An entry wins over the product's BOMItem for the same
// material when computing the variation's effective BOM.
type BOMVariation struct {
	BaseModel
	ProductVariationID string  `db:"product_variation_id" json:"product_variation_id"`
	MaterialID         string  `db:"material_id" json:"material_id"`
	Quantity           float64 `db:"quantity" json:"quantity"`
	UnitCost           float64 `db:"unit_cost" json:"unit_cost"`
	TotalCost          float64 `db:"total_cost" json:"total_cost"`
	Notes              *string `db:"notes" json:"notes"`
	IsActive           bool    `db:"is_active" json:"is_active"`

	Material *Material `db:"-" json:"material,omitempty"`
}
