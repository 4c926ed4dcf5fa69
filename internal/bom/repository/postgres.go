package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"github.com/tokotrack/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// --- Product-level BOM items ---

func (r *PGRepository) CreateItem(ctx context.Context, item *model.BOMItem) error {
	query := `
        INSERT INTO bom_items (
            id, product_id, material_id, quantity, unit_cost, total_cost,
            notes, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :material_id, :quantity, :unit_cost, :total_cost,
            :notes, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return pkgerrors.Wrap(err, "bom.CreateItem")
}

func (r *PGRepository) FindItemByID(ctx context.Context, id string) (*model.BOMItem, error) {
	var item model.BOMItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM bom_items WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "bom.FindItemByID")
	}
	return &item, nil
}

func (r *PGRepository) FindItemsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.BOMItem, error) {
	var items []model.BOMItem
	query := `SELECT * FROM bom_items WHERE product_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at ASC`

	if err := r.DB.SelectContext(ctx, &items, query, productID); err != nil {
		return nil, pkgerrors.Wrap(err, "bom.FindItemsByProduct")
	}
	return items, nil
}

func (r *PGRepository) FindItemsByMaterial(ctx context.Context, materialID string) ([]model.BOMItem, error) {
	var items []model.BOMItem
	query := `SELECT * FROM bom_items WHERE material_id = $1 AND is_active = true`
	if err := r.DB.SelectContext(ctx, &items, query, materialID); err != nil {
		return nil, pkgerrors.Wrap(err, "bom.FindItemsByMaterial")
	}
	return items, nil
}

func (r *PGRepository) UpdateItem(ctx context.Context, item *model.BOMItem) error {
	query := `
        UPDATE bom_items
        SET quantity = :quantity,
            unit_cost = :unit_cost,
            total_cost = :total_cost,
            notes = :notes,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return pkgerrors.Wrap(err, "bom.UpdateItem")
}

func (r *PGRepository) SoftDeleteItem(ctx context.Context, id string) error {
	query := `UPDATE bom_items SET is_active = false, updated_at = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id)
	return pkgerrors.Wrap(err, "bom.SoftDeleteItem")
}

// --- Variation-level overrides ---

func (r *PGRepository) CreateEntry(ctx context.Context, entry *model.BOMVariation) error {
	query := `
        INSERT INTO bom_variations (
            id, product_variation_id, material_id, quantity, unit_cost, total_cost,
            notes, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_variation_id, :material_id, :quantity, :unit_cost, :total_cost,
            :notes, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return pkgerrors.Wrap(err, "bom.CreateEntry")
}

func (r *PGRepository) FindEntryByID(ctx context.Context, id string) (*model.BOMVariation, error) {
	var entry model.BOMVariation
	err := r.DB.GetContext(ctx, &entry, `SELECT * FROM bom_variations WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "bom.FindEntryByID")
	}
	return &entry, nil
}

func (r *PGRepository) FindEntriesByVariation(ctx context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error) {
	var entries []model.BOMVariation
	query := `SELECT * FROM bom_variations WHERE product_variation_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at ASC`

	if err := r.DB.SelectContext(ctx, &entries, query, variationID); err != nil {
		return nil, pkgerrors.Wrap(err, "bom.FindEntriesByVariation")
	}
	return entries, nil
}

func (r *PGRepository) FindEntriesByMaterial(ctx context.Context, materialID string) ([]model.BOMVariation, error) {
	var entries []model.BOMVariation
	query := `SELECT * FROM bom_variations WHERE material_id = $1 AND is_active = true`
	if err := r.DB.SelectContext(ctx, &entries, query, materialID); err != nil {
		return nil, pkgerrors.Wrap(err, "bom.FindEntriesByMaterial")
	}
	return entries, nil
}

func (r *PGRepository) UpdateEntry(ctx context.Context, entry *model.BOMVariation) error {
	query := `
        UPDATE bom_variations
        SET quantity = :quantity,
            unit_cost = :unit_cost,
            total_cost = :total_cost,
            notes = :notes,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return pkgerrors.Wrap(err, "bom.UpdateEntry")
}

func (r *PGRepository) SoftDeleteEntry(ctx context.Context, id string) error {
	query := `UPDATE bom_variations SET is_active = false, updated_at = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id)
	return pkgerrors.Wrap(err, "bom.SoftDeleteEntry")
}

// RecostForMaterial persists the recomputed unit/total costs after a
// material's unit-cost change. All rows commit together with the
// material update elsewhere kept last-write-wins (single-row atomicity
// is all the store guarantees; this tx just avoids half-recosted BOMs).
func (r *PGRepository) RecostForMaterial(ctx context.Context, items []model.BOMItem, entries []model.BOMVariation) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "bom.RecostForMaterial begin")
	}
	defer tx.Rollback()

	for i := range items {
		_, err = tx.NamedExecContext(ctx, `
            UPDATE bom_items SET unit_cost = :unit_cost, total_cost = :total_cost, updated_at = :updated_at
            WHERE id = :id
        `, &items[i])
		if err != nil {
			return pkgerrors.Wrap(err, "bom.RecostForMaterial item")
		}
	}
	for i := range entries {
		_, err = tx.NamedExecContext(ctx, `
            UPDATE bom_variations SET unit_cost = :unit_cost, total_cost = :total_cost, updated_at = :updated_at
            WHERE id = :id
        `, &entries[i])
		if err != nil {
			return pkgerrors.Wrap(err, "bom.RecostForMaterial entry")
		}
	}

	return pkgerrors.Wrap(tx.Commit(), "bom.RecostForMaterial commit")
}
