package model

type Product struct {
	BaseModel
	ShopID        string  `db:"shop_id" json:"shop_id"`
	CategoryID    *string `db:"category_id" json:"category_id"` // Nullable
	SKU           string  `db:"sku" json:"sku"`
	Name          string  `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
	Price         float64 `db:"price" json:"price"`
	CostPrice     *float64 `db:"cost_price" json:"cost_price"`
	StockQuantity int      `db:"stock_quantity" json:"stock_quantity"`
	ImageURL      *string  `db:"image_url" json:"image_url"`
	IsActive      bool     `db:"is_active" json:"is_active"`

	Variations []ProductVariation `db:"-" json:"variations,omitempty"` // Not in DB table directly
	BOMItems   []BOMItem          `db:"-" json:"bom_items,omitempty"`  // Joined data
	Category   *Category          `db:"-" json:"category,omitempty"`
}

// ProductVariation is one concrete sellable configuration of a product.
// FinalPrice is derived: product price + adjustment. The service owns
// the derivation and writes the column back on every mutation.
type ProductVariation struct {
	BaseModel
	ProductID       string  `db:"product_id" json:"product_id"`
	Name            string  `db:"name" json:"name"`
	SKU             *string `db:"sku" json:"sku"`
	PriceAdjustment float64 `db:"price_adjustment" json:"price_adjustment"`
	FinalPrice      float64 `db:"final_price" json:"final_price"`
	StockQuantity   int     `db:"stock_quantity" json:"stock_quantity"`
	IsActive        bool    `db:"is_active" json:"is_active"`

	Combinations []VariationCombination `db:"-" json:"combinations,omitempty"`
}

// VariationCombination binds a variation to one chosen option per axis.
// The type id is denormalized from the option so axis uniqueness can be
// checked without a join.
type VariationCombination struct {
	ID                 string `db:"id" json:"id"`
	ProductVariationID string `db:"product_variation_id" json:"product_variation_id"`
	VariationTypeID    string `db:"variation_type_id" json:"variation_type_id"`
	VariationOptionID  string `db:"variation_option_id" json:"variation_option_id"`
}
