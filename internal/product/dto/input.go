package dto

type CreateProductInput struct {
	ShopID        string  `json:"-"`
	CategoryID    string  `json:"category_id"` // Optional
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
}

type UpdateProductInput struct {
	ID            string  `json:"-"`
	ShopID        string  `json:"-"`
	CategoryID    string  `json:"category_id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
	IsActive      bool    `json:"is_active"`
}

// UpdatePriceInput is separate from UpdateProductInput because a price
// change fans out to every active variation's final price.
type UpdatePriceInput struct {
	ID     string  `json:"-"`
	ShopID string  `json:"-"`
	Price  float64 `json:"price"`
}
