package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, shop_id, category_id, sku, name, description,
            price, cost_price, stock_quantity, image_url, is_active,
            created_at, updated_at
        )
        VALUES (
            :id, :shop_id, :category_id, :sku, :name, :description,
            :price, :cost_price, :stock_quantity, :image_url, :is_active,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return pkgerrors.Wrap(err, "product.Create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "product.FindByID")
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ShopID != "" {
		conditions = append(conditions, "shop_id = :shop_id")
		args["shop_id"] = f.ShopID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count
	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "product.FindAll count")
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	// List
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Prevent SQL injection by whitelisting fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "product.FindAll prepare")
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "product.FindAll select")
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            name = :name,
            description = :description,
            price = :price,
            cost_price = :cost_price,
            stock_quantity = :stock_quantity,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND shop_id = :shop_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return pkgerrors.Wrap(err, "product.Update")
}

func (r *PGRepository) SoftDelete(ctx context.Context, id, shopID string) error {
	query := `UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2 AND shop_id = $3`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id, shopID)
	return pkgerrors.Wrap(err, "product.SoftDelete")
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, shopID, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE shop_id = $1 AND sku = $2`
	args := []interface{}{shopID, sku}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, pkgerrors.Wrap(err, "product.IsSKUUnique")
	}
	return count == 0, nil
}

func (r *PGRepository) FindActiveVariations(ctx context.Context, productID string) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	query := `SELECT * FROM product_variations WHERE product_id = $1 AND is_active = true ORDER BY created_at ASC`
	err := r.DB.SelectContext(ctx, &variations, query, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "product.FindActiveVariations")
	}
	return variations, nil
}

// UpdatePriceWithVariations writes the new product price and the
// recomputed final price of every variation in a single transaction so
// readers never observe the price without the fan-out.
func (r *PGRepository) UpdatePriceWithVariations(ctx context.Context, p *model.Product, variations []model.ProductVariation) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "product.UpdatePriceWithVariations begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        UPDATE products SET price = :price, updated_at = :updated_at
        WHERE id = :id AND shop_id = :shop_id
    `, p)
	if err != nil {
		return pkgerrors.Wrap(err, "product.UpdatePriceWithVariations product")
	}

	for i := range variations {
		v := &variations[i]
		_, err = tx.NamedExecContext(ctx, `
            UPDATE product_variations SET final_price = :final_price, updated_at = :updated_at
            WHERE id = :id
        `, v)
		if err != nil {
			return pkgerrors.Wrap(err, "product.UpdatePriceWithVariations variation")
		}
	}

	return pkgerrors.Wrap(tx.Commit(), "product.UpdatePriceWithVariations commit")
}
