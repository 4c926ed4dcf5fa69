package dto

import "github.com/tokotrack/catalog-service/internal/costing"

// VariationCost is one variation's roll-up inside a product cost report.
// Margin is nil when the final price is zero (undefined, not an error).
type VariationCost struct {
	VariationID  string            `json:"variation_id"`
	Name         string            `json:"name"`
	FinalPrice   float64           `json:"final_price"`
	MaterialCost float64           `json:"material_cost"`
	Margin       *float64          `json:"margin"`
	Lines        []costing.BOMLine `json:"lines"`
}

type CostReport struct {
	ProductID    string          `json:"product_id"`
	Price        float64         `json:"price"`
	MaterialCost float64         `json:"material_cost"`
	Margin       *float64        `json:"margin"`
	Variations   []VariationCost `json:"variations"`
}
