package material

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id string) (*model.Material, error)
	FindAll(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id, shopID string) error

	// Stock writes pair the quantity change with its audit row in one
	// transaction. Variations share the movements table, so their
	// deductions live here too.
	AdjustStockWithMovement(ctx context.Context, m *model.Material, movement *model.StockMovement) error
	AdjustVariationStockWithMovement(ctx context.Context, v *model.ProductVariation, movement *model.StockMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
