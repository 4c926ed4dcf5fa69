package dto

type ProductFilters struct {
	ShopID      string
	CategoryID  string
	IsActive    *bool
	SearchQuery string // For name or sku search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
