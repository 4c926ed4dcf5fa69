package dto

type CreateMaterialInput struct {
	ShopID       string  `json:"-"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Unit         string  `json:"unit"`
	UnitCost     float64 `json:"unit_cost"`
	UnitPrice    float64 `json:"unit_price"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
}

type UpdateMaterialInput struct {
	ID        string  `json:"-"`
	ShopID    string  `json:"-"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	MinStock  float64 `json:"min_stock"`
	IsActive  bool    `json:"is_active"`
}

// UpdateUnitCostInput is separate because the cost change fans out to
// every BOM row referencing the material.
type UpdateUnitCostInput struct {
	ID       string  `json:"-"`
	ShopID   string  `json:"-"`
	UnitCost float64 `json:"unit_cost"`
}

type AdjustStockInput struct {
	MaterialID     string  `json:"-"`
	ShopID         string  `json:"-"`
	QuantityChange float64 `json:"quantity_change"`
	Reason         string  `json:"reason"`
	ReferenceID    string  `json:"reference_id"`
	ReferenceType  string  `json:"reference_type"`
	UserID         string  `json:"-"`
}

// ConsumeForSaleInput comes from the order-created listener; one input
// per ordered line item.
type ConsumeForSaleInput struct {
	ShopID      string
	VariationID string
	Quantity    int
	ReferenceID string
	UserID      string
}
