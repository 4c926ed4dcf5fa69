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

// --- Variation types ---

func (r *PGRepository) CreateType(ctx context.Context, t *model.VariationType) error {
	query := `
        INSERT INTO variation_types (id, owner_id, name, description, created_at, updated_at)
        VALUES (:id, :owner_id, :name, :description, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return pkgerrors.Wrap(err, "variation.CreateType")
}

func (r *PGRepository) FindTypeByID(ctx context.Context, id string) (*model.VariationType, error) {
	var t model.VariationType
	err := r.DB.GetContext(ctx, &t, `SELECT * FROM variation_types WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "variation.FindTypeByID")
	}
	return &t, nil
}

// FindTypes returns the owner's axes plus the shared system presets.
func (r *PGRepository) FindTypes(ctx context.Context, ownerID string) ([]model.VariationType, error) {
	var types []model.VariationType
	query := `SELECT * FROM variation_types WHERE owner_id IN ($1, $2) ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &types, query, ownerID, model.SystemOwner)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindTypes")
	}
	return types, nil
}

func (r *PGRepository) UpdateType(ctx context.Context, t *model.VariationType) error {
	query := `
        UPDATE variation_types
        SET name = :name, description = :description, updated_at = :updated_at
        WHERE id = :id AND owner_id = :owner_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return pkgerrors.Wrap(err, "variation.UpdateType")
}

// --- Variation options ---

func (r *PGRepository) CreateOption(ctx context.Context, o *model.VariationOption) error {
	query := `
        INSERT INTO variation_options (id, variation_type_id, name, description, created_at, updated_at)
        VALUES (:id, :variation_type_id, :name, :description, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return pkgerrors.Wrap(err, "variation.CreateOption")
}

func (r *PGRepository) FindOptionsByIDs(ctx context.Context, ids []string) ([]model.VariationOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM variation_options WHERE id IN (?)`, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindOptionsByIDs in")
	}
	query = r.DB.Rebind(query)

	var options []model.VariationOption
	if err := r.DB.SelectContext(ctx, &options, query, args...); err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindOptionsByIDs")
	}
	return options, nil
}

func (r *PGRepository) FindOptionsByType(ctx context.Context, typeID string) ([]model.VariationOption, error) {
	var options []model.VariationOption
	query := `SELECT * FROM variation_options WHERE variation_type_id = $1 ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &options, query, typeID); err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindOptionsByType")
	}
	return options, nil
}

func (r *PGRepository) UpdateOption(ctx context.Context, o *model.VariationOption) error {
	query := `
        UPDATE variation_options
        SET name = :name, description = :description, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return pkgerrors.Wrap(err, "variation.UpdateOption")
}

// --- Product variations ---

// CreateVariationWithCombinations inserts the variation and its
// combination rows in one transaction; a failed combination insert
// rolls back the whole composition.
func (r *PGRepository) CreateVariationWithCombinations(ctx context.Context, v *model.ProductVariation, combos []model.VariationCombination) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "variation.Create begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO product_variations (
            id, product_id, name, sku, price_adjustment, final_price,
            stock_quantity, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :name, :sku, :price_adjustment, :final_price,
            :stock_quantity, :is_active, :created_at, :updated_at
        )
    `, v)
	if err != nil {
		return pkgerrors.Wrap(err, "variation.Create variation")
	}

	for i := range combos {
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO variation_combinations (id, product_variation_id, variation_type_id, variation_option_id)
            VALUES (:id, :product_variation_id, :variation_type_id, :variation_option_id)
        `, &combos[i])
		if err != nil {
			return pkgerrors.Wrap(err, "variation.Create combination")
		}
	}

	return pkgerrors.Wrap(tx.Commit(), "variation.Create commit")
}

func (r *PGRepository) FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error) {
	var v model.ProductVariation
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM product_variations WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "variation.FindVariationByID")
	}
	return &v, nil
}

func (r *PGRepository) FindVariationsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	query := `SELECT * FROM product_variations WHERE product_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at ASC`

	if err := r.DB.SelectContext(ctx, &variations, query, productID); err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindVariationsByProduct")
	}
	return variations, nil
}

func (r *PGRepository) FindCombinations(ctx context.Context, variationID string) ([]model.VariationCombination, error) {
	var combos []model.VariationCombination
	query := `SELECT * FROM variation_combinations WHERE product_variation_id = $1`
	if err := r.DB.SelectContext(ctx, &combos, query, variationID); err != nil {
		return nil, pkgerrors.Wrap(err, "variation.FindCombinations")
	}
	return combos, nil
}

func (r *PGRepository) UpdateVariation(ctx context.Context, v *model.ProductVariation) error {
	query := `
        UPDATE product_variations
        SET name = :name,
            sku = :sku,
            price_adjustment = :price_adjustment,
            final_price = :final_price,
            stock_quantity = :stock_quantity,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return pkgerrors.Wrap(err, "variation.UpdateVariation")
}

func (r *PGRepository) SoftDeleteVariation(ctx context.Context, id string) error {
	query := `UPDATE product_variations SET is_active = false, updated_at = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id)
	return pkgerrors.Wrap(err, "variation.SoftDeleteVariation")
}
