package material

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/model"
)

type UseCase interface {
	CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error)
	GetMaterial(ctx context.Context, id string) (*model.Material, error)
	ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id, shopID string) error

	// UpdateUnitCost changes the material's unit cost and recomputes
	// total_cost on every BOM row referencing it.
	UpdateUnitCost(ctx context.Context, input *dto.UpdateUnitCostInput) (*model.Material, error)

	// AdjustStock applies a manual stock change under a per-material
	// lock, writing a movement audit row.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Material, error)

	// ConsumeForSale deducts a sold variation's stock and, through its
	// effective BOM, each consumed material's stock.
	ConsumeForSale(ctx context.Context, input *dto.ConsumeForSaleInput) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
