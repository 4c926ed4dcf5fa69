package model

// VariationType is a named axis of variation, e.g. "Size" or "Color".
// OwnerID is a user id, or SystemOwner for shared presets.
type VariationType struct {
	BaseModel
	OwnerID     string  `db:"owner_id" json:"owner_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`

	Options []VariationOption `db:"-" json:"options,omitempty"`
}

// VariationOption is one value on a VariationType axis, e.g. "Large".
type VariationOption struct {
	BaseModel
	VariationTypeID string  `db:"variation_type_id" json:"variation_type_id"`
	Name            string  `db:"name" json:"name"`
	Description     *string `db:"description" json:"description"`
}
