package model

type Category struct {
	BaseModel
	ShopID      string     `db:"shop_id" json:"shop_id"`
	ParentID    *string    `db:"parent_id" json:"parent_id"` // Nullable
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Children    []Category `db:"-" json:"children,omitempty"` // For tree structure, not in DB
}
