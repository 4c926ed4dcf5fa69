package dto

type CreateBOMItemInput struct {
	ProductID  string   `json:"-"`
	ShopID     string   `json:"-"`
	MaterialID string   `json:"material_id"`
	Quantity   float64  `json:"quantity"`
	UnitCost   *float64 `json:"unit_cost"` // nil = snapshot the material's current unit cost
	Notes      string   `json:"notes"`
}

type UpdateBOMItemInput struct {
	ID       string   `json:"-"`
	Quantity float64  `json:"quantity"`
	UnitCost *float64 `json:"unit_cost"`
	Notes    string   `json:"notes"`
	IsActive bool     `json:"is_active"`
}

type CreateBOMVariationInput struct {
	ProductVariationID string   `json:"-"`
	ShopID             string   `json:"-"`
	MaterialID         string   `json:"material_id"`
	Quantity           float64  `json:"quantity"`
	UnitCost           *float64 `json:"unit_cost"`
	Notes              string   `json:"notes"`
}

type UpdateBOMVariationInput struct {
	ID       string   `json:"-"`
	Quantity float64  `json:"quantity"`
	UnitCost *float64 `json:"unit_cost"`
	Notes    string   `json:"notes"`
	IsActive bool     `json:"is_active"`
}
