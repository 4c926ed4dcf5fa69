package model

import "time"

// SystemOwner marks variation-type presets shared across every shop.
// Rows owned by it are readable by all tenants and writable by none.
const SystemOwner = "system"

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
