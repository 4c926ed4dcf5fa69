package dto

type CreateVariationTypeInput struct {
	OwnerID     string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateVariationTypeInput struct {
	ID          string `json:"-"`
	OwnerID     string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateVariationOptionInput struct {
	OwnerID         string `json:"-"`
	VariationTypeID string `json:"variation_type_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
}

// ComposeVariationInput carries everything needed to create one
// sellable configuration: the parent product, pricing, stock and the
// chosen option per axis.
type ComposeVariationInput struct {
	ProductID       string   `json:"-"`
	ShopID          string   `json:"-"`
	Name            string   `json:"name"`
	SKU             string   `json:"sku"`
	PriceAdjustment float64  `json:"price_adjustment"`
	StockQuantity   int      `json:"stock_quantity"`
	OptionIDs       []string `json:"option_ids"`
}

type UpdateVariationInput struct {
	ID              string  `json:"-"`
	ShopID          string  `json:"-"`
	Name            string  `json:"name"`
	SKU             string  `json:"sku"`
	PriceAdjustment float64 `json:"price_adjustment"`
	StockQuantity   int     `json:"stock_quantity"`
	IsActive        bool    `json:"is_active"`
}
