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

func (r *PGRepository) Create(ctx context.Context, cat *model.Category) error {
	query := `
        INSERT INTO categories (id, shop_id, parent_id, name, description, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :shop_id, :parent_id, :name, :description, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, cat)
	return pkgerrors.Wrap(err, "category.Create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var cat model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &cat, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "category.FindByID")
	}
	return &cat, nil
}

func (r *PGRepository) FindAll(ctx context.Context, shopID string, activeOnly bool) ([]model.Category, error) {
	var cats []model.Category
	query := `SELECT * FROM categories WHERE shop_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	err := r.DB.SelectContext(ctx, &cats, query, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "category.FindAll")
	}
	return cats, nil
}

func (r *PGRepository) Update(ctx context.Context, cat *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            description = :description,
            sort_order = :sort_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND shop_id = :shop_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, cat)
	return pkgerrors.Wrap(err, "category.Update")
}

func (r *PGRepository) SoftDelete(ctx context.Context, id, shopID string) error {
	query := `UPDATE categories SET is_active = false, updated_at = $1 WHERE id = $2 AND shop_id = $3`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id, shopID)
	return pkgerrors.Wrap(err, "category.SoftDelete")
}
