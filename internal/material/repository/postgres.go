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

	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.Material) error {
	query := `
        INSERT INTO materials (
            id, shop_id, name, sku, unit, unit_cost, unit_price,
            current_stock, min_stock, is_active, created_at, updated_at
        )
        VALUES (
            :id, :shop_id, :name, :sku, :unit, :unit_cost, :unit_price,
            :current_stock, :min_stock, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return pkgerrors.Wrap(err, "material.Create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Material, error) {
	var m model.Material
	err := r.DB.GetContext(ctx, &m, `SELECT * FROM materials WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "material.FindByID")
	}
	return &m, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MaterialFilters) ([]model.Material, int, error) {
	var materials []model.Material
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ShopID != "" {
		conditions = append(conditions, "shop_id = :shop_id")
		args["shop_id"] = f.ShopID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.LowStock {
		conditions = append(conditions, "current_stock <= min_stock")
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM materials" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.FindAll count")
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := fmt.Sprintf("SELECT * FROM materials%s ORDER BY name ASC", whereClause)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.FindAll prepare")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &materials, args); err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.FindAll select")
	}

	return materials, count, nil
}

func (r *PGRepository) Update(ctx context.Context, m *model.Material) error {
	query := `
        UPDATE materials
        SET name = :name,
            sku = :sku,
            unit = :unit,
            unit_cost = :unit_cost,
            unit_price = :unit_price,
            current_stock = :current_stock,
            min_stock = :min_stock,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND shop_id = :shop_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return pkgerrors.Wrap(err, "material.Update")
}

func (r *PGRepository) SoftDelete(ctx context.Context, id, shopID string) error {
	query := `UPDATE materials SET is_active = false, updated_at = $1 WHERE id = $2 AND shop_id = $3`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), id, shopID)
	return pkgerrors.Wrap(err, "material.SoftDelete")
}

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, m *model.Material, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "material.AdjustStock begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        UPDATE materials SET current_stock = :current_stock, updated_at = :updated_at
        WHERE id = :id AND shop_id = :shop_id
    `, m)
	if err != nil {
		return pkgerrors.Wrap(err, "material.AdjustStock update")
	}

	if err := insertMovement(ctx, tx, movement); err != nil {
		return err
	}

	return pkgerrors.Wrap(tx.Commit(), "material.AdjustStock commit")
}

func (r *PGRepository) AdjustVariationStockWithMovement(ctx context.Context, v *model.ProductVariation, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "material.AdjustVariationStock begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        UPDATE product_variations SET stock_quantity = :stock_quantity, updated_at = :updated_at
        WHERE id = :id
    `, v)
	if err != nil {
		return pkgerrors.Wrap(err, "material.AdjustVariationStock update")
	}

	if err := insertMovement(ctx, tx, movement); err != nil {
		return err
	}

	return pkgerrors.Wrap(tx.Commit(), "material.AdjustVariationStock commit")
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, movement *model.StockMovement) error {
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO stock_movements (
            id, shop_id, subject_type, subject_id, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_by, created_at
        )
        VALUES (
            :id, :shop_id, :subject_type, :subject_id, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_by, :created_at
        )
    `, movement)
	return pkgerrors.Wrap(err, "material.insertMovement")
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var movements []model.StockMovement
	var count int

	conditions := []string{"shop_id = :shop_id"}
	args := map[string]interface{}{"shop_id": f.ShopID}

	if f.SubjectType != "" {
		conditions = append(conditions, "subject_type = :subject_type")
		args["subject_type"] = f.SubjectType
	}
	if f.SubjectID != "" {
		conditions = append(conditions, "subject_id = :subject_id")
		args["subject_id"] = f.SubjectID
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.ListMovements count")
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := fmt.Sprintf("SELECT * FROM stock_movements%s ORDER BY created_at DESC", whereClause)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.ListMovements prepare")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &movements, args); err != nil {
		return nil, 0, pkgerrors.Wrap(err, "material.ListMovements select")
	}

	return movements, count, nil
}
