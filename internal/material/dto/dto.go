package dto

type MaterialFilters struct {
	ShopID      string
	IsActive    *bool
	LowStock    bool // current_stock <= min_stock
	SearchQuery string
	Page        int
	PageSize    int
}

type MovementFilters struct {
	ShopID      string
	SubjectType string // "material" or "variation", empty = both
	SubjectID   string
	Page        int
	PageSize    int
}
