package dto

type CreateCategoryInput struct {
	ShopID      string  `json:"-"`
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateCategoryInput struct {
	ID          string  `json:"-"`
	ShopID      string  `json:"-"`
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SortOrder   int     `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}
